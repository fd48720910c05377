package displayinfo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// displayInfoRow is the relational shape; profile_id is the primary key, so
// a profile can have at most one row.
type displayInfoRow struct {
	ProfileID       string `gorm:"primaryKey;size:36"`
	DisplayName     string
	LogoURL         string `gorm:"column:logo_url"`
	Headline        string
	Subheadline     string
	CallToAction    string
	CallToActionURL string `gorm:"column:call_to_action_url"`
	HeroImageURL    string `gorm:"column:hero_image_url"`
	AvatarURL       string `gorm:"column:avatar_url"`
	Bio             string
	PhoneNumber     string
	EmailContact    string
	WhatsAppLink    string `gorm:"column:whatsapp_link"`
	FacebookLink    string
	InstagramLink   string
	InstagramAt     string
	LinkedInLink    string `gorm:"column:linkedin_link"`
	WebsiteURL      string `gorm:"column:website_url"`
	AgendaLink      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (displayInfoRow) TableName() string { return "display_info" }

func newRow(profileID string, f FormData) displayInfoRow {
	return displayInfoRow{
		ProfileID:       profileID,
		DisplayName:     f.DisplayName,
		LogoURL:         f.LogoURL,
		Headline:        f.Headline,
		Subheadline:     f.Subheadline,
		CallToAction:    f.CallToAction,
		CallToActionURL: f.CallToActionURL,
		HeroImageURL:    f.HeroImageURL,
		AvatarURL:       f.AvatarURL,
		Bio:             f.Bio,
		PhoneNumber:     f.PhoneNumber,
		EmailContact:    f.EmailContact,
		WhatsAppLink:    f.WhatsAppLink,
		FacebookLink:    f.FacebookLink,
		InstagramLink:   f.InstagramLink,
		InstagramAt:     f.InstagramAt,
		LinkedInLink:    f.LinkedInLink,
		WebsiteURL:      f.WebsiteURL,
		AgendaLink:      f.AgendaLink,
	}
}

func (r displayInfoRow) toDisplayInfo() *DisplayInfo {
	return &DisplayInfo{
		ProfileID: r.ProfileID,
		FormData: FormData{
			DisplayName:     r.DisplayName,
			LogoURL:         r.LogoURL,
			Headline:        r.Headline,
			Subheadline:     r.Subheadline,
			CallToAction:    r.CallToAction,
			CallToActionURL: r.CallToActionURL,
			HeroImageURL:    r.HeroImageURL,
			AvatarURL:       r.AvatarURL,
			Bio:             r.Bio,
			PhoneNumber:     r.PhoneNumber,
			EmailContact:    r.EmailContact,
			WhatsAppLink:    r.WhatsAppLink,
			FacebookLink:    r.FacebookLink,
			InstagramLink:   r.InstagramLink,
			InstagramAt:     r.InstagramAt,
			LinkedInLink:    r.LinkedInLink,
			WebsiteURL:      r.WebsiteURL,
			AgendaLink:      r.AgendaLink,
		},
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

// SQLStore implements Store on a gorm connection.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Migrate creates or updates the display_info table.
func (s *SQLStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&displayInfoRow{})
}

func (s *SQLStore) Get(ctx context.Context, profileID string) (*DisplayInfo, error) {
	var row displayInfoRow
	err := s.db.WithContext(ctx).Where("profile_id = ?", profileID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toDisplayInfo(), nil
}

func (s *SQLStore) Create(ctx context.Context, profileID string, data FormData) (*DisplayInfo, error) {
	row := newRow(profileID, data.normalized())
	row.CreatedAt = time.Now().UTC()
	row.UpdatedAt = row.CreatedAt

	err := s.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = ErrAlreadyExists
	}
	audit(ctx, "create", profileID, err)
	if err != nil {
		return nil, err
	}
	return row.toDisplayInfo(), nil
}

// Update rewrites every editable column. Select("*") makes gorm write empty
// strings instead of skipping zero values.
func (s *SQLStore) Update(ctx context.Context, profileID string, data FormData) (*DisplayInfo, error) {
	var result *DisplayInfo
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current displayInfoRow
		if err := tx.Where("profile_id = ?", profileID).Take(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		row := newRow(profileID, data.normalized())
		row.CreatedAt = current.CreatedAt
		row.UpdatedAt = time.Now().UTC()
		if err := tx.Model(&current).Select("*").Omit("profile_id", "created_at").Updates(&row).Error; err != nil {
			return err
		}
		result = row.toDisplayInfo()
		return nil
	})
	audit(ctx, "update", profileID, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *SQLStore) Delete(ctx context.Context, profileID string) error {
	res := s.db.WithContext(ctx).Where("profile_id = ?", profileID).Delete(&displayInfoRow{})
	err := res.Error
	if err == nil && res.RowsAffected == 0 {
		err = ErrNotFound
	}
	audit(ctx, "delete", profileID, err)
	return err
}

// DeleteOwned removes the row of profileID inside tx, if there is one. The
// profile store calls it while deleting the owning profile.
func (s *SQLStore) DeleteOwned(tx *gorm.DB, profileID string) error {
	return tx.Where("profile_id = ?", profileID).Delete(&displayInfoRow{}).Error
}

var _ Store = (*SQLStore)(nil)
