package repos

import (
	"github.com/jmoiron/sqlx"

	"github.com/mis883/janus-pharma-portal/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, brand_name, composition, division, packing, mrp, stock_status,
  image_url, visual_aid_url, video_url, launch_date, is_trending,
  tags_json, is_promotional, COALESCE(created_at,'') AS created_at`

// List returns the whole catalog in insertion order.
func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT`+productCols+` FROM products ORDER BY rowid`)
	return out, err
}

// Filter applies the division preset and a case-insensitive substring
// match over brand name, composition and tags. Result order is always
// catalog insertion order, so the same arguments give the same rows.
func (r *ProductRepo) Filter(q, division string) ([]domain.Product, error) {
	where := `1=1`
	args := []any{}
	if division != "" && division != "All" {
		where += ` AND division = ?`
		args = append(args, division)
	}
	if q != "" {
		where += ` AND (LOWER(brand_name) LIKE ? OR LOWER(composition) LIKE ? OR LOWER(tags_json) LIKE ?)`
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}

	var out []domain.Product
	err := r.db.Select(&out, `SELECT`+productCols+` FROM products WHERE `+where+` ORDER BY rowid`, args...)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) Trending() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT`+productCols+` FROM products WHERE is_trending = 1 ORDER BY rowid`)
	return out, err
}

// NewLaunches returns products launched on or after the cutoff date,
// newest first.
func (r *ProductRepo) NewLaunches(cutoff string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
		SELECT`+productCols+` FROM products
		WHERE launch_date != '' AND launch_date >= ?
		ORDER BY launch_date DESC, rowid`, cutoff)
	return out, err
}

func (r *ProductRepo) Insert(p domain.Product) error {
	_, err := r.db.Exec(`
		INSERT INTO products(id, brand_name, composition, division, packing, mrp, stock_status,
		  image_url, visual_aid_url, video_url, launch_date, is_trending, tags_json, is_promotional)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.BrandName, p.Composition, p.Division, p.Packing, p.MRP, p.StockStatus,
		p.ImageURL, p.VisualAidURL, p.VideoURL, p.LaunchDate, p.IsTrending, p.TagsJSON, p.IsPromotional)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
		UPDATE products SET brand_name=?, composition=?, division=?, packing=?, mrp=?, stock_status=?,
		  image_url=?, visual_aid_url=?, video_url=?, launch_date=?, is_trending=?, tags_json=?, is_promotional=?
		WHERE id=?`,
		p.BrandName, p.Composition, p.Division, p.Packing, p.MRP, p.StockStatus,
		p.ImageURL, p.VisualAidURL, p.VideoURL, p.LaunchDate, p.IsTrending, p.TagsJSON, p.IsPromotional,
		p.ID)
	return err
}

func (r *ProductRepo) SetTrending(id string, trending bool) error {
	_, err := r.db.Exec(`UPDATE products SET is_trending=? WHERE id=?`, trending, id)
	return err
}

func (r *ProductRepo) Divisions() ([]string, error) {
	var out []string
	err := r.db.Select(&out, `SELECT name FROM divisions ORDER BY position`)
	return out, err
}
