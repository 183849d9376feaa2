package repos

import (
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/mis883/janus-pharma-portal/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `
  id, user_id, user_name, status, total_inquiry_value, final_payable_amount,
  invoice_url, payment_proof_url, docket_number, transport_details,
  COALESCE(created_at,'') AS created_at`

// Create inserts the order header and its snapshot lines in one
// transaction; a placed order either exists whole or not at all.
func (r *OrderRepo) Create(o domain.Order, lines []domain.OrderLine) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO orders(id, user_id, user_name, status, total_inquiry_value, created_at)
		VALUES(?,?,?,?,?,?)`,
		o.ID, o.UserID, o.UserName, o.Status, o.TotalInquiryValue, o.CreatedAt,
	); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := tx.Exec(`
			INSERT INTO order_lines(order_id, product_id, brand_name, packing, mrp, quantity)
			VALUES(?,?,?,?,?,?)`,
			o.ID, l.ProductID, l.BrandName, l.Packing, l.MRP, l.Quantity,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *OrderRepo) Get(id string) (domain.Order, []domain.OrderLine, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT`+orderCols+` FROM orders WHERE id = ?`, id); err != nil {
		return domain.Order{}, nil, err
	}
	var lines []domain.OrderLine
	if err := r.db.Select(&lines, `
		SELECT order_id, product_id, brand_name, packing, mrp, quantity
		FROM order_lines WHERE order_id = ? ORDER BY rowid`, id); err != nil {
		return domain.Order{}, nil, err
	}
	return o, lines, nil
}

func (r *OrderRepo) ListAll() ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `SELECT`+orderCols+` FROM orders ORDER BY datetime(created_at) DESC`)
	return out, err
}

func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT`+orderCols+` FROM orders WHERE user_id = ?
		ORDER BY datetime(created_at) DESC`, userID)
	return out, err
}

// ---------- Guarded transitions ----------
//
// Each transition is one UPDATE whose WHERE clause carries the state
// guard; zero rows affected means the guard did not hold, and nothing
// was touched.

func (r *OrderRepo) MarkProcessing(id string) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE orders SET status = 'Processing'
		WHERE id = ? AND status = 'Pending'`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *OrderRepo) RequestPayment(id string, finalAmount decimal.Decimal, invoiceURL string) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE orders SET status = 'Payment Requested', final_payable_amount = ?, invoice_url = ?
		WHERE id = ? AND status IN ('Pending','Processing')`,
		finalAmount, invoiceURL, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *OrderRepo) SubmitProof(id, proofURL string) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE orders SET status = 'Payment Submitted', payment_proof_url = ?
		WHERE id = ? AND status = 'Payment Requested'`, proofURL, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Dispatch accepts Payment Requested as well as Payment Submitted:
// staff may confirm payment out of band and ship before the customer
// uploads proof.
func (r *OrderRepo) Dispatch(id, docketNumber, transportDetails string) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE orders SET status = 'Dispatched', docket_number = ?, transport_details = ?
		WHERE id = ? AND status IN ('Payment Submitted','Payment Requested')`,
		docketNumber, transportDetails, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *OrderRepo) Cancel(id string) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE orders SET status = 'Cancelled'
		WHERE id = ? AND status NOT IN ('Dispatched','Cancelled')`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// History derives a customer's purchase events from the ledger itself,
// newest first. Cancelled inquiries never shipped, so they carry no
// demand signal and are excluded.
func (r *OrderRepo) History(userID string) ([]domain.OrderHistoryItem, error) {
	var out []domain.OrderHistoryItem
	err := r.db.Select(&out, `
		SELECT o.created_at AS order_date, ol.product_id, ol.quantity
		FROM orders o
		JOIN order_lines ol ON ol.order_id = o.id
		WHERE o.user_id = ? AND o.status != 'Cancelled'
		ORDER BY datetime(o.created_at) DESC`, userID)
	return out, err
}
