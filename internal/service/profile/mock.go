package profile

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockStore is an in-memory Store for tests. Setting GetErr or WriteErr
// makes the matching calls fail, to simulate an unreachable backend.
type MockStore struct {
	mu       sync.RWMutex
	profiles map[string]*Profile

	GetErr   error
	WriteErr error

	// OnDelete, when set, runs with the profile ID before a delete; an error
	// aborts it.
	OnDelete func(ctx context.Context, profileID string) error

	creates int
}

func NewMockStore() *MockStore {
	return &MockStore{profiles: make(map[string]*Profile)}
}

func (m *MockStore) Get(_ context.Context, userID string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MockStore) Create(_ context.Context, userID string, params CreateParams) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return nil, m.WriteErr
	}
	if _, ok := m.profiles[userID]; ok {
		return nil, ErrAlreadyExists
	}
	params = params.normalized()
	now := time.Now().UTC()
	p := &Profile{
		ID:            uuid.NewString(),
		UserID:        userID,
		FullName:      params.FullName,
		InternalEmail: params.InternalEmail,
		InternalPhone: params.InternalPhone,
		CompanyName:   params.CompanyName,
		DocumentID:    params.DocumentID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	m.profiles[userID] = p
	m.creates++
	cp := *p
	return &cp, nil
}

func (m *MockStore) Update(_ context.Context, userID string, params UpdateParams) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return nil, m.WriteErr
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	params.apply(p)
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (m *MockStore) Delete(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	p, ok := m.profiles[userID]
	if !ok {
		return ErrNotFound
	}
	if m.OnDelete != nil {
		if err := m.OnDelete(ctx, p.ID); err != nil {
			return err
		}
	}
	delete(m.profiles, userID)
	return nil
}

// CreateCount reports how many profiles Create has inserted.
func (m *MockStore) CreateCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creates
}

// Put stores p as-is, bypassing normalization.
func (m *MockStore) Put(p Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.UserID] = &p
}

var _ Store = (*MockStore)(nil)
