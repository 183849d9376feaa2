package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Division bucket every promotional SKU is pinned to, whatever the
// submitter supplied.
const PromotionalDivision = "Marketing Inputs"

// NewLaunchWindowDays is how long a product counts as a new launch.
const NewLaunchWindowDays = 60

type StockStatus string

const (
	StockAvailable  StockStatus = "Available"
	StockLow        StockStatus = "Low Stock"
	StockComingSoon StockStatus = "Coming Soon"
	StockOut        StockStatus = "Out of Stock"
)

type Product struct {
	ID            string          `db:"id"`
	BrandName     string          `db:"brand_name"`
	Composition   string          `db:"composition"` // empty for promotional SKUs
	Division      string          `db:"division"`
	Packing       string          `db:"packing"`
	MRP           decimal.Decimal `db:"mrp"` // 0 = complimentary
	StockStatus   StockStatus     `db:"stock_status"`
	ImageURL      string          `db:"image_url"`
	VisualAidURL  string          `db:"visual_aid_url"`
	VideoURL      string          `db:"video_url"`
	LaunchDate    string          `db:"launch_date"` // YYYY-MM-DD
	IsTrending    bool            `db:"is_trending"`
	TagsJSON      string          `db:"tags_json"`
	IsPromotional bool            `db:"is_promotional"`
	CreatedAt     string          `db:"created_at"`
}

// Tags decodes the stored keyword list; bad or empty JSON yields nil.
func (p Product) Tags() []string {
	if p.TagsJSON == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(p.TagsJSON), &tags); err != nil {
		return nil
	}
	return tags
}

func (p *Product) SetTags(tags []string) {
	if len(tags) == 0 {
		p.TagsJSON = "[]"
		return
	}
	b, _ := json.Marshal(tags)
	p.TagsJSON = string(b)
}

// IsNewLaunch reports whether the launch date falls inside the window.
func (p Product) IsNewLaunch(now time.Time) bool {
	if p.LaunchDate == "" {
		return false
	}
	launch, err := time.Parse("2006-01-02", p.LaunchDate)
	if err != nil {
		return false
	}
	return !launch.After(now) && now.Sub(launch) <= NewLaunchWindowDays*24*time.Hour
}

type CompanySettings struct {
	Name           string `db:"name"`
	Address        string `db:"address"`
	Phone          string `db:"phone"`
	LogoURL        string `db:"logo_url"`
	WhatsAppNumber string `db:"whatsapp_number"`
	FacebookURL    string `db:"facebook_url"`
	InstagramURL   string `db:"instagram_url"`
}

type Banner struct {
	ID           string `db:"id"`
	Headline     string `db:"headline"`
	Subheadline  string `db:"subheadline"`
	ImageURL     string `db:"image_url"`
	ButtonText   string `db:"button_text"`
	LinkTo       string `db:"link_to"` // division preset for /catalog
	OverlayColor string `db:"overlay_color"`
}
