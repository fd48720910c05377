package displayinfo

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const displayInfoCollection = "display_info"

// FirestoreStore keeps one document per profile at display_info/{profileID}.
// Documents are plain maps keyed by the form field names.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) doc(profileID string) *firestore.DocumentRef {
	return s.client.Collection(displayInfoCollection).Doc(profileID)
}

func toDocument(profileID string, f FormData, createdAt, updatedAt time.Time) map[string]any {
	m := make(map[string]any, len(Fields)+3)
	for _, name := range Fields {
		m[name] = f.Value(name)
	}
	m["profile_id"] = profileID
	m["created_at"] = createdAt
	m["updated_at"] = updatedAt
	return m
}

func fromDocument(profileID string, m map[string]any) *DisplayInfo {
	d := &DisplayInfo{ProfileID: profileID}
	for _, name := range Fields {
		if v, ok := m[name].(string); ok {
			*d.ref(name) = v
		}
	}
	d.CreatedAt, _ = m["created_at"].(time.Time)
	d.UpdatedAt, _ = m["updated_at"].(time.Time)
	return d
}

func (s *FirestoreStore) Get(ctx context.Context, profileID string) (*DisplayInfo, error) {
	snap, err := s.doc(profileID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return fromDocument(profileID, snap.Data()), nil
}

func (s *FirestoreStore) Create(ctx context.Context, profileID string, data FormData) (*DisplayInfo, error) {
	now := time.Now().UTC()
	data = data.normalized()

	_, err := s.doc(profileID).Create(ctx, toDocument(profileID, data, now, now))
	if status.Code(err) == codes.AlreadyExists {
		err = ErrAlreadyExists
	}
	audit(ctx, "create", profileID, err)
	if err != nil {
		return nil, err
	}
	return &DisplayInfo{ProfileID: profileID, FormData: data, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *FirestoreStore) Update(ctx context.Context, profileID string, data FormData) (*DisplayInfo, error) {
	ref := s.doc(profileID)
	data = data.normalized()
	var result *DisplayInfo

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		current := fromDocument(profileID, snap.Data())
		now := time.Now().UTC()
		if err := tx.Set(ref, toDocument(profileID, data, current.CreatedAt, now)); err != nil {
			return err
		}
		result = &DisplayInfo{ProfileID: profileID, FormData: data, CreatedAt: current.CreatedAt, UpdatedAt: now}
		return nil
	})
	audit(ctx, "update", profileID, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *FirestoreStore) Delete(ctx context.Context, profileID string) error {
	ref := s.doc(profileID)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(ref)
	})
	audit(ctx, "delete", profileID, err)
	return err
}

// DeleteOwned removes the document of profileID inside tx, if there is one.
// The profile store calls it while deleting the owning profile.
func (s *FirestoreStore) DeleteOwned(tx *firestore.Transaction, profileID string) error {
	return tx.Delete(s.doc(profileID))
}

var _ Store = (*FirestoreStore)(nil)
