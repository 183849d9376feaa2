package repos

import (
	"github.com/jmoiron/sqlx"

	"github.com/mis883/janus-pharma-portal/internal/domain"
)

type SettingsRepo struct{ db *sqlx.DB }

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo { return &SettingsRepo{db: db} }

func (r *SettingsRepo) Get() (domain.CompanySettings, error) {
	var s domain.CompanySettings
	err := r.db.Get(&s, `
		SELECT name, address, phone, logo_url, whatsapp_number, facebook_url, instagram_url
		FROM settings WHERE id = 1`)
	return s, err
}

func (r *SettingsRepo) Update(s domain.CompanySettings) error {
	_, err := r.db.Exec(`
		UPDATE settings SET name=?, address=?, phone=?, logo_url=?, whatsapp_number=?,
		  facebook_url=?, instagram_url=?
		WHERE id = 1`,
		s.Name, s.Address, s.Phone, s.LogoURL, s.WhatsAppNumber, s.FacebookURL, s.InstagramURL)
	return err
}

func (r *SettingsRepo) News() ([]string, error) {
	var out []string
	err := r.db.Select(&out, `SELECT headline FROM news_ticker ORDER BY position`)
	return out, err
}

// ReplaceNews swaps the whole ticker in one transaction.
func (r *SettingsRepo) ReplaceNews(headlines []string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM news_ticker`); err != nil {
		return err
	}
	for i, h := range headlines {
		if _, err := tx.Exec(`INSERT INTO news_ticker(position, headline) VALUES(?,?)`, i, h); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SettingsRepo) Banners() ([]domain.Banner, error) {
	var out []domain.Banner
	err := r.db.Select(&out, `
		SELECT id, headline, subheadline, image_url, button_text, link_to, overlay_color
		FROM banners ORDER BY position`)
	return out, err
}
