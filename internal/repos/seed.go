package repos

import (
	_ "embed"
	"encoding/json"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Divisions []string `yaml:"divisions"`
	Settings  struct {
		Name           string `yaml:"name"`
		Address        string `yaml:"address"`
		Phone          string `yaml:"phone"`
		LogoURL        string `yaml:"logo_url"`
		WhatsAppNumber string `yaml:"whatsapp_number"`
	} `yaml:"settings"`
	News  []string `yaml:"news"`
	Users []struct {
		ID       string `yaml:"id"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Role     string `yaml:"role"`
		Name     string `yaml:"name"`
	} `yaml:"users"`
	Banners []struct {
		ID           string `yaml:"id"`
		Headline     string `yaml:"headline"`
		Subheadline  string `yaml:"subheadline"`
		ImageURL     string `yaml:"image_url"`
		ButtonText   string `yaml:"button_text"`
		LinkTo       string `yaml:"link_to"`
		OverlayColor string `yaml:"overlay_color"`
	} `yaml:"banners"`
	Products []struct {
		ID            string   `yaml:"id"`
		BrandName     string   `yaml:"brand_name"`
		Composition   string   `yaml:"composition"`
		Division      string   `yaml:"division"`
		Packing       string   `yaml:"packing"`
		MRP           string   `yaml:"mrp"`
		StockStatus   string   `yaml:"stock_status"`
		ImageURL      string   `yaml:"image_url"`
		VisualAidURL  string   `yaml:"visual_aid_url"`
		VideoURL      string   `yaml:"video_url"`
		Trending      bool     `yaml:"trending"`
		LaunchAgeDays *int     `yaml:"launch_age_days"`
		Tags          []string `yaml:"tags"`
		Promotional   bool     `yaml:"promotional"`
	} `yaml:"products"`
}

// seedIfEmpty loads the baseline dataset from the embedded YAML when
// the catalog is empty. Launch dates are relative ages so the
// new-launch window behaves the same on any start date.
func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var sf seedFile
	if err := yaml.Unmarshal(seedYAML, &sf); err != nil {
		return err
	}
	log.Println("[seed] inserting baseline catalog/users/settings")

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, name := range sf.Divisions {
		if _, err := tx.Exec(`INSERT INTO divisions(name, position) VALUES(?,?)
			ON CONFLICT(name) DO NOTHING`, name, i); err != nil {
			return err
		}
	}

	now := time.Now()
	for _, p := range sf.Products {
		division := p.Division
		if p.Promotional {
			division = "Marketing Inputs"
		} else if division == "" {
			division = "General"
		}
		launch := ""
		if p.LaunchAgeDays != nil {
			launch = now.AddDate(0, 0, -*p.LaunchAgeDays).Format("2006-01-02")
		}
		tags, _ := json.Marshal(p.Tags)
		if _, err := tx.Exec(`
			INSERT INTO products(id, brand_name, composition, division, packing, mrp, stock_status,
			  image_url, visual_aid_url, video_url, launch_date, is_trending, tags_json, is_promotional)
			VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			p.ID, p.BrandName, p.Composition, division, p.Packing, p.MRP, p.StockStatus,
			p.ImageURL, p.VisualAidURL, p.VideoURL, launch, p.Trending, string(tags), p.Promotional,
		); err != nil {
			return err
		}
	}

	for _, u := range sf.Users {
		h, err := bcrypt.GenerateFromPassword([]byte(u.Password), 12)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO users(id, username, name, password_hash, role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(username) DO NOTHING`,
			u.ID, u.Username, u.Name, string(h), u.Role,
		); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO settings(id, name, address, phone, logo_url, whatsapp_number)
		VALUES(1,?,?,?,?,?)
		ON CONFLICT(id) DO NOTHING`,
		sf.Settings.Name, sf.Settings.Address, sf.Settings.Phone,
		sf.Settings.LogoURL, sf.Settings.WhatsAppNumber,
	); err != nil {
		return err
	}

	for i, h := range sf.News {
		if _, err := tx.Exec(`INSERT INTO news_ticker(position, headline) VALUES(?,?)`, i, h); err != nil {
			return err
		}
	}

	for i, b := range sf.Banners {
		if _, err := tx.Exec(`
			INSERT INTO banners(id, headline, subheadline, image_url, button_text, link_to, overlay_color, position)
			VALUES(?,?,?,?,?,?,?,?)`,
			b.ID, b.Headline, b.Subheadline, b.ImageURL, b.ButtonText, b.LinkTo, b.OverlayColor, i,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// seedDemoOrders plants the distributor's order history (idempotent).
// The two dispatched CardioSafe orders sit 65 and 35 days back, which
// gives the restock advisor a 30-day mean gap already overdue.
func seedDemoOrders(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM orders`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	type line struct {
		productID string
		brand     string
		packing   string
		mrp       string
		qty       int
	}
	type demo struct {
		id      string
		status  string
		total   string
		final   any
		docket  string
		invoice string
		ageDays int
		lines   []line
	}
	demos := []demo{
		{
			id: "ORD-1001", status: "Dispatched", total: "2200", final: "2100",
			docket: "DTDC-99887766", ageDays: 65,
			lines: []line{{"p-1", "CardioSafe-10", "10x10 Alu-Alu", "120", 10}, {"p-3", "OrthoFlex Gel", "30g Tube", "110", 20}},
		},
		{
			id: "ORD-1002", status: "Dispatched", total: "1200", final: "1200",
			docket: "DTDC-22334455", ageDays: 35,
			lines: []line{{"p-1", "CardioSafe-10", "10x10 Alu-Alu", "120", 10}},
		},
		{
			id: "ORD-1003", status: "Payment Requested", total: "8500", final: "8200",
			invoice: "/media/invoices/ORD-1003.pdf", ageDays: 1,
			lines: []line{{"p-2", "DermGlo Cream", "20g Tube", "85", 100}},
		},
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, d := range demos {
		created := time.Now().AddDate(0, 0, -d.ageDays).UTC().Format(time.RFC3339)
		if _, err := tx.Exec(`
			INSERT INTO orders(id, user_id, user_name, status, total_inquiry_value,
			  final_payable_amount, invoice_url, docket_number, created_at)
			VALUES(?,?,?,?,?,?,?,?,?)`,
			d.id, "u-distributor", "MediCare Pharma", d.status, d.total,
			d.final, d.invoice, d.docket, created,
		); err != nil {
			return err
		}
		for _, l := range d.lines {
			if _, err := tx.Exec(`
				INSERT INTO order_lines(order_id, product_id, brand_name, packing, mrp, quantity)
				VALUES(?,?,?,?,?,?)`,
				d.id, l.productID, l.brand, l.packing, l.mrp, l.qty,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
