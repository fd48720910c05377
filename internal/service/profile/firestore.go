package profile

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/janisto/profile-pages/internal/platform/logging"
)

// Collection holds one profile document per identity.
const Collection = "profiles"

// FirestoreDependent deletes a record owned by profileID inside the profile
// delete transaction. It runs after the profile read, so it may only write.
type FirestoreDependent func(tx *firestore.Transaction, profileID string) error

// firestoreProfile is the document stored at profiles/{userID}. The document
// ID enforces one profile per identity.
type firestoreProfile struct {
	ID            string    `firestore:"id"`
	UserID        string    `firestore:"user_id"`
	FullName      string    `firestore:"full_name"`
	InternalEmail string    `firestore:"internal_email"`
	InternalPhone string    `firestore:"internal_phone"`
	CompanyName   string    `firestore:"company_name"`
	DocumentID    string    `firestore:"document_id"`
	CreatedAt     time.Time `firestore:"created_at"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

func (fp firestoreProfile) toProfile() *Profile {
	return &Profile{
		ID:            fp.ID,
		UserID:        fp.UserID,
		FullName:      fp.FullName,
		InternalEmail: fp.InternalEmail,
		InternalPhone: fp.InternalPhone,
		CompanyName:   fp.CompanyName,
		DocumentID:    fp.DocumentID,
		CreatedAt:     fp.CreatedAt,
		UpdatedAt:     fp.UpdatedAt,
	}
}

// FirestoreStore implements Store on Firestore, using transactions so
// create-if-absent and read-modify-write are atomic. Delete also removes
// every record registered as a dependent, in the same transaction.
type FirestoreStore struct {
	client     *firestore.Client
	dependents []FirestoreDependent
}

func NewFirestoreStore(client *firestore.Client, dependents ...FirestoreDependent) *FirestoreStore {
	return &FirestoreStore{client: client, dependents: dependents}
}

func (s *FirestoreStore) doc(userID string) *firestore.DocumentRef {
	return s.client.Collection(Collection).Doc(userID)
}

func notFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func (s *FirestoreStore) audit(ctx context.Context, action, userID, resourceID string, err error) {
	ev := applog.AuditEvent{
		Action:       action,
		UserID:       userID,
		ResourceType: "profile",
		ResourceID:   resourceID,
	}
	if err != nil {
		ev.Result = applog.AuditFailure
		ev.Details = map[string]any{"error": auditCategory(err)}
	}
	applog.LogAuditEvent(ctx, ev)
}

func (s *FirestoreStore) Create(ctx context.Context, userID string, params CreateParams) (*Profile, error) {
	ref := s.doc(userID)
	params = params.normalized()
	var result *Profile

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err == nil && snap.Exists() {
			return ErrAlreadyExists
		}
		if err != nil && !notFound(err) {
			return err
		}

		now := time.Now().UTC()
		fp := firestoreProfile{
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
		if err := tx.Create(ref, fp); err != nil {
			return err
		}
		result = fp.toProfile()
		return nil
	})
	if err != nil && status.Code(err) == codes.AlreadyExists {
		err = ErrAlreadyExists
	}
	if err != nil {
		s.audit(ctx, "create", userID, userID, err)
		return nil, err
	}
	s.audit(ctx, "create", userID, result.ID, nil)
	return result, nil
}

func (s *FirestoreStore) Get(ctx context.Context, userID string) (*Profile, error) {
	snap, err := s.doc(userID).Get(ctx)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var fp firestoreProfile
	if err := snap.DataTo(&fp); err != nil {
		return nil, err
	}
	return fp.toProfile(), nil
}

func (s *FirestoreStore) Update(ctx context.Context, userID string, params UpdateParams) (*Profile, error) {
	ref := s.doc(userID)
	var result *Profile

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if notFound(err) {
				return ErrNotFound
			}
			return err
		}
		var fp firestoreProfile
		if err := snap.DataTo(&fp); err != nil {
			return err
		}

		p := fp.toProfile()
		params.apply(p)
		fp.FullName = p.FullName
		fp.InternalEmail = p.InternalEmail
		fp.InternalPhone = p.InternalPhone
		fp.CompanyName = p.CompanyName
		fp.DocumentID = p.DocumentID
		fp.UpdatedAt = time.Now().UTC()

		if err := tx.Set(ref, fp); err != nil {
			return err
		}
		result = fp.toProfile()
		return nil
	})
	if err != nil {
		s.audit(ctx, "update", userID, userID, err)
		return nil, err
	}
	s.audit(ctx, "update", userID, result.ID, nil)
	return result, nil
}

func (s *FirestoreStore) Delete(ctx context.Context, userID string) error {
	ref := s.doc(userID)
	resourceID := userID
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if notFound(err) {
				return ErrNotFound
			}
			return err
		}
		var fp firestoreProfile
		if err := snap.DataTo(&fp); err != nil {
			return err
		}
		for _, remove := range s.dependents {
			if err := remove(tx, fp.ID); err != nil {
				return fmt.Errorf("delete owned records: %w", err)
			}
		}
		resourceID = fp.ID
		return tx.Delete(ref)
	})
	s.audit(ctx, "delete", userID, resourceID, err)
	return err
}

var _ Store = (*FirestoreStore)(nil)
