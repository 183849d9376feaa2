package repos

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type CartItemRow struct {
	ProductID string          `db:"product_id"`
	BrandName string          `db:"brand_name"`
	Packing   string          `db:"packing"`
	Qty       int             `db:"qty"`
	MRPAtAdd  decimal.Decimal `db:"mrp_at_add"`
	Subtotal  decimal.Decimal `db:"subtotal"`
}

func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID); err == nil {
		return cartID, nil
	}
	_, err := r.db.Exec(`INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

func (r *CartRepo) UpsertItem(cartID, productID string, qty int, mrp decimal.Decimal) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(cart_id,product_id,qty,mrp_at_add,created_at)
		VALUES(?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(cart_id,product_id) DO UPDATE
		SET qty = cart_items.qty + excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, cartID, productID, qty, mrp)
	return err
}

func (r *CartRepo) SetQty(cartID, productID string, qty int) error {
	_, err := r.db.Exec(`
		UPDATE cart_items SET qty = ?, updated_at = CURRENT_TIMESTAMP
		WHERE cart_id = ? AND product_id = ?`, qty, cartID, productID)
	return err
}

func (r *CartRepo) Remove(cartID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`, cartID, productID)
	return err
}

// Items joins the live product for display fields; the priced snapshot
// is mrp_at_add.
func (r *CartRepo) Items(cartID string) ([]CartItemRow, error) {
	rows := []CartItemRow{}
	err := r.db.Select(&rows, `
	  SELECT ci.product_id, p.brand_name, p.packing, ci.qty, ci.mrp_at_add,
	         (ci.qty*ci.mrp_at_add) AS subtotal
	  FROM cart_items ci JOIN products p ON p.id=ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY ci.rowid
	`, cartID)
	return rows, err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}
