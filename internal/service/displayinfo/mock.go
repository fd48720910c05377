package displayinfo

import (
	"context"
	"sync"
	"time"
)

// MockStore is an in-memory Store for tests. GetErr and WriteErr force
// failures.
type MockStore struct {
	mu      sync.RWMutex
	records map[string]*DisplayInfo
	writes  int

	GetErr   error
	WriteErr error
}

func NewMockStore() *MockStore {
	return &MockStore{records: make(map[string]*DisplayInfo)}
}

func (m *MockStore) Get(_ context.Context, profileID string) (*DisplayInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	d, ok := m.records[profileID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *MockStore) Create(_ context.Context, profileID string, data FormData) (*DisplayInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return nil, m.WriteErr
	}
	if _, ok := m.records[profileID]; ok {
		return nil, ErrAlreadyExists
	}
	now := time.Now().UTC()
	d := &DisplayInfo{ProfileID: profileID, FormData: data.normalized(), CreatedAt: now, UpdatedAt: now}
	m.records[profileID] = d
	m.writes++
	cp := *d
	return &cp, nil
}

func (m *MockStore) Update(_ context.Context, profileID string, data FormData) (*DisplayInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return nil, m.WriteErr
	}
	d, ok := m.records[profileID]
	if !ok {
		return nil, ErrNotFound
	}
	d.FormData = data.normalized()
	d.UpdatedAt = time.Now().UTC()
	m.writes++
	cp := *d
	return &cp, nil
}

func (m *MockStore) Delete(_ context.Context, profileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if _, ok := m.records[profileID]; !ok {
		return ErrNotFound
	}
	delete(m.records, profileID)
	m.writes++
	return nil
}

// DeleteOwned drops the record of profileID, if any. It matches the
// profile mock's OnDelete hook.
func (m *MockStore) DeleteOwned(_ context.Context, profileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	delete(m.records, profileID)
	return nil
}

// Put stores d as-is.
func (m *MockStore) Put(d DisplayInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[d.ProfileID] = &d
}

// Writes counts successful Create, Update and Delete calls.
func (m *MockStore) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

var _ Store = (*MockStore)(nil)
