package repos

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type WishlistRepo struct{ db *sqlx.DB }

func NewWishlistRepo(db *sqlx.DB) *WishlistRepo { return &WishlistRepo{db: db} }

func (r *WishlistRepo) Ensure(sessionID string) (string, error) {
	var id string
	if err := r.db.Get(&id, `SELECT id FROM wishlists WHERE session_id=?`, sessionID); err == nil {
		return id, nil
	}
	_, err := r.db.Exec(`INSERT INTO wishlists(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

func (r *WishlistRepo) Add(wishlistID, productID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO wishlist_items(wishlist_id, product_id, created_at)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(wishlist_id, product_id) DO NOTHING
	`, wishlistID, productID)
	return err
}

func (r *WishlistRepo) Remove(wishlistID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM wishlist_items WHERE wishlist_id=? AND product_id=?`, wishlistID, productID)
	return err
}

type WishlistRow struct {
	ProductID   string          `db:"product_id"`
	BrandName   string          `db:"brand_name"`
	Packing     string          `db:"packing"`
	MRP         decimal.Decimal `db:"mrp"`
	StockStatus string          `db:"stock_status"`
}

func (r *WishlistRepo) List(wishlistID string) ([]WishlistRow, error) {
	var out []WishlistRow
	err := r.db.Select(&out, `
	  SELECT p.id AS product_id, p.brand_name, p.packing, p.mrp, p.stock_status
	  FROM wishlist_items wi
	  JOIN products p ON p.id = wi.product_id
	  WHERE wi.wishlist_id = ?
	  ORDER BY p.brand_name
	`, wishlistID)
	return out, err
}
