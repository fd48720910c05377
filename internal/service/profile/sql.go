package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	applog "github.com/janisto/profile-pages/internal/platform/logging"
)

// profileRow is the relational shape of a profile. The unique index on
// user_id is what keeps racing creates from producing two rows.
type profileRow struct {
	ID            string `gorm:"primaryKey;size:36"`
	UserID        string `gorm:"uniqueIndex;not null;size:128"`
	FullName      string
	InternalEmail string
	InternalPhone string
	CompanyName   string
	DocumentID    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (profileRow) TableName() string { return "profiles" }

func (r profileRow) toProfile() *Profile {
	return &Profile{
		ID:            r.ID,
		UserID:        r.UserID,
		FullName:      r.FullName,
		InternalEmail: r.InternalEmail,
		InternalPhone: r.InternalPhone,
		CompanyName:   r.CompanyName,
		DocumentID:    r.DocumentID,
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
}

// SQLDependent deletes rows owned by profileID inside the profile delete
// transaction.
type SQLDependent func(tx *gorm.DB, profileID string) error

// SQLStore implements Store on a gorm connection (postgres or sqlite).
// Delete also removes the rows of every registered dependent, atomically.
type SQLStore struct {
	db         *gorm.DB
	dependents []SQLDependent
}

func NewSQLStore(db *gorm.DB, dependents ...SQLDependent) *SQLStore {
	return &SQLStore{db: db, dependents: dependents}
}

// Migrate creates or updates the profiles table.
func (s *SQLStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&profileRow{})
}

func (s *SQLStore) audit(ctx context.Context, action, userID, resourceID string, err error) {
	ev := applog.AuditEvent{Action: action, UserID: userID, ResourceType: "profile", ResourceID: resourceID}
	if err != nil {
		ev.Result = applog.AuditFailure
		ev.Details = map[string]any{"error": auditCategory(err)}
	}
	applog.LogAuditEvent(ctx, ev)
}

func (s *SQLStore) find(tx *gorm.DB, userID string) (*profileRow, error) {
	var row profileRow
	err := tx.Where("user_id = ?", userID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *SQLStore) Get(ctx context.Context, userID string) (*Profile, error) {
	row, err := s.find(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	return row.toProfile(), nil
}

func (s *SQLStore) Create(ctx context.Context, userID string, params CreateParams) (*Profile, error) {
	params = params.normalized()
	now := time.Now().UTC()
	row := profileRow{
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

	err := s.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = ErrAlreadyExists
	}
	if err != nil {
		s.audit(ctx, "create", userID, userID, err)
		return nil, err
	}
	s.audit(ctx, "create", userID, row.ID, nil)
	return row.toProfile(), nil
}

func (s *SQLStore) Update(ctx context.Context, userID string, params UpdateParams) (*Profile, error) {
	var result *Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.find(tx, userID)
		if err != nil {
			return err
		}
		p := row.toProfile()
		params.apply(p)

		err = tx.Model(row).Updates(map[string]any{
			"full_name":      p.FullName,
			"internal_email": p.InternalEmail,
			"internal_phone": p.InternalPhone,
			"company_name":   p.CompanyName,
			"document_id":    p.DocumentID,
			"updated_at":     time.Now().UTC(),
		}).Error
		if err != nil {
			return err
		}
		if row, err = s.find(tx, userID); err != nil {
			return err
		}
		result = row.toProfile()
		return nil
	})
	if err != nil {
		s.audit(ctx, "update", userID, userID, err)
		return nil, err
	}
	s.audit(ctx, "update", userID, result.ID, nil)
	return result, nil
}

func (s *SQLStore) Delete(ctx context.Context, userID string) error {
	resourceID := userID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.find(tx, userID)
		if err != nil {
			return err
		}
		for _, remove := range s.dependents {
			if err := remove(tx, row.ID); err != nil {
				return fmt.Errorf("delete owned records: %w", err)
			}
		}
		resourceID = row.ID
		return tx.Delete(row).Error
	})
	s.audit(ctx, "delete", userID, resourceID, err)
	return err
}

var _ Store = (*SQLStore)(nil)
