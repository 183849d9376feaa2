package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/mis883/janus-pharma-portal/internal/domain"
	"github.com/mis883/janus-pharma-portal/internal/repos"
	"github.com/mis883/janus-pharma-portal/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func distributor(t *testing.T, db *sqlx.DB) *domain.User {
	t.Helper()
	u, err := repos.NewUserRepo(db).ByUsername("distributor")
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func staffUser(t *testing.T, db *sqlx.DB) *domain.User {
	t.Helper()
	u, err := repos.NewUserRepo(db).ByUsername("staff")
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestPlaceFreezesInquiryValue(t *testing.T) {
	db := memdb(t)
	prodRepo := repos.NewProductRepo(db)
	cartSvc := services.NewCartService(repos.NewCartRepo(db), prodRepo)
	orderSvc := services.NewOrderService(repos.NewCartRepo(db), repos.NewOrderRepo(db))
	cust := distributor(t, db)

	sid := "sess-freeze"
	if err := cartSvc.Add(sid, "p-1", 5); err != nil {
		t.Fatal(err)
	}

	o, err := orderSvc.Place(cust, sid)
	if err != nil {
		t.Fatal(err)
	}
	placedTotal := o.TotalInquiryValue

	// Reprice the product after the fact; the order must not move.
	p, err := prodRepo.Get("p-1")
	if err != nil {
		t.Fatal(err)
	}
	p.MRP = p.MRP.Mul(decimal.NewFromInt(10))
	p.BrandName = "Renamed-10"
	if err := prodRepo.Update(p); err != nil {
		t.Fatal(err)
	}

	got, lines, err := orderSvc.Get(cust, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.TotalInquiryValue.Equal(placedTotal) {
		t.Fatalf("inquiry value moved after catalog edit: placed %s, now %s", placedTotal, got.TotalInquiryValue)
	}
	if len(lines) != 1 || lines[0].BrandName == "Renamed-10" {
		t.Fatalf("line snapshot followed the catalog edit: %+v", lines)
	}

	// Cart is consumed by a successful placement.
	cv, err := cartSvc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 0 {
		t.Fatalf("cart should be empty after checkout, has %d items", len(cv.Items))
	}
}

func TestPlaceRequiresCustomerAndItems(t *testing.T) {
	db := memdb(t)
	orderSvc := services.NewOrderService(repos.NewCartRepo(db), repos.NewOrderRepo(db))

	if _, err := orderSvc.Place(staffUser(t, db), "sess-x"); !errors.Is(err, services.ErrUnauthorized) {
		t.Fatalf("staff placement: want ErrUnauthorized, got %v", err)
	}
	if _, err := orderSvc.Place(distributor(t, db), "sess-empty"); !errors.Is(err, services.ErrCartEmpty) {
		t.Fatalf("empty cart: want ErrCartEmpty, got %v", err)
	}
}

func placeOrder(t *testing.T, db *sqlx.DB, sid string) domain.Order {
	t.Helper()
	cartSvc := services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))
	orderSvc := services.NewOrderService(repos.NewCartRepo(db), repos.NewOrderRepo(db))
	if err := cartSvc.Add(sid, "p-2", 3); err != nil {
		t.Fatal(err)
	}
	o, err := orderSvc.Place(distributor(t, db), sid)
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func TestTransitionGuardsLeaveStateUntouched(t *testing.T) {
	db := memdb(t)
	orderSvc := services.NewOrderService(repos.NewCartRepo(db), repos.NewOrderRepo(db))
	staff := staffUser(t, db)
	cust := distributor(t, db)
	o := placeOrder(t, db, "sess-guard")

	// Proof before payment is requested: rejected, still Pending.
	if err := orderSvc.SubmitProof(cust, o.ID, "/media/proof.png"); !errors.Is(err, services.ErrInvalidTransition) {
		t.Fatalf("early proof: want ErrInvalidTransition, got %v", err)
	}
	got, _, _ := orderSvc.Get(staff, o.ID)
	if got.Status != domain.OrderPending {
		t.Fatalf("status moved on rejected transition: %s", got.Status)
	}

	if err := orderSvc.MarkProcessing(staff, o.ID); err != nil {
		t.Fatal(err)
	}
	// Repeating the same transition is a conflict.
	if err := orderSvc.MarkProcessing(staff, o.ID); !errors.Is(err, services.ErrInvalidTransition) {
		t.Fatalf("double processing: want ErrInvalidTransition, got %v", err)
	}

	amount := decimal.NewFromInt(900)
	if err := orderSvc.RequestPayment(staff, o.ID, amount, "/media/inv.pdf"); err != nil {
		t.Fatal(err)
	}
	got, _, _ = orderSvc.Get(staff, o.ID)
	if got.Status != domain.OrderPaymentRequested || !got.FinalPayable.Valid || !got.FinalPayable.Decimal.Equal(amount) {
		t.Fatalf("payment request not recorded: %+v", got)
	}

	// Dispatch straight from Payment Requested: proof upload is optional.
	if err := orderSvc.Dispatch(staff, o.ID, "DKT-42", "BlueDart surface"); err != nil {
		t.Fatal(err)
	}
	got, _, _ = orderSvc.Get(staff, o.ID)
	if got.Status != domain.OrderDispatched {
		t.Fatalf("want Dispatched, got %s", got.Status)
	}

	// Terminal: no further motion, including cancel.
	if err := orderSvc.Cancel(staff, o.ID); !errors.Is(err, services.ErrInvalidTransition) {
		t.Fatalf("cancel after dispatch: want ErrInvalidTransition, got %v", err)
	}
	if err := orderSvc.Dispatch(staff, o.ID, "DKT-43", ""); !errors.Is(err, services.ErrInvalidTransition) {
		t.Fatalf("double dispatch: want ErrInvalidTransition, got %v", err)
	}
}

func TestProofThenDispatchPath(t *testing.T) {
	db := memdb(t)
	orderSvc := services.NewOrderService(repos.NewCartRepo(db), repos.NewOrderRepo(db))
	staff := staffUser(t, db)
	cust := distributor(t, db)

	// ORD-1003 is seeded at Payment Requested for the distributor.
	if err := orderSvc.SubmitProof(cust, "ORD-1003", "/media/proof-1003.png"); err != nil {
		t.Fatal(err)
	}
	got, _, _ := orderSvc.Get(staff, "ORD-1003")
	if got.Status != domain.OrderPaymentSubmitted || got.PaymentProofURL == "" {
		t.Fatalf("proof not recorded: %+v", got)
	}
	if err := orderSvc.SubmitProof(cust, "ORD-1003", "/media/again.png"); !errors.Is(err, services.ErrInvalidTransition) {
		t.Fatalf("double proof: want ErrInvalidTransition, got %v", err)
	}
	if err := orderSvc.Dispatch(staff, "ORD-1003", "DKT-1003", ""); err != nil {
		t.Fatal(err)
	}
}

func TestCancelFromNonTerminal(t *testing.T) {
	db := memdb(t)
	orderSvc := services.NewOrderService(repos.NewCartRepo(db), repos.NewOrderRepo(db))
	staff := staffUser(t, db)
	o := placeOrder(t, db, "sess-cancel")

	if err := orderSvc.Cancel(distributor(t, db), o.ID); !errors.Is(err, services.ErrUnauthorized) {
		t.Fatalf("customer cancel: want ErrUnauthorized, got %v", err)
	}
	if err := orderSvc.Cancel(staff, o.ID); err != nil {
		t.Fatal(err)
	}
	got, _, _ := orderSvc.Get(staff, o.ID)
	if got.Status != domain.OrderCancelled {
		t.Fatalf("want Cancelled, got %s", got.Status)
	}
}

func TestCustomerReadIsolation(t *testing.T) {
	db := memdb(t)
	orderSvc := services.NewOrderService(repos.NewCartRepo(db), repos.NewOrderRepo(db))
	users := repos.NewUserRepo(db)

	other := domain.User{ID: "u-other", Username: "other.pharma", Name: "Other Pharma", Hash: "x", Role: domain.RoleCustomer}
	if err := users.Insert(other); err != nil {
		t.Fatal(err)
	}

	// ORD-1001 belongs to the distributor, not to "other".
	if _, _, err := orderSvc.Get(&other, "ORD-1001"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("cross-customer read: want ErrNotFound, got %v", err)
	}
	if _, _, err := orderSvc.Get(staffUser(t, db), "ORD-1001"); err != nil {
		t.Fatalf("staff read should pass: %v", err)
	}

	mine, err := orderSvc.ListFor(&other)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 0 {
		t.Fatalf("new customer should see no orders, saw %d", len(mine))
	}
}

func TestRequestPaymentValidatesInputs(t *testing.T) {
	db := memdb(t)
	orderSvc := services.NewOrderService(repos.NewCartRepo(db), repos.NewOrderRepo(db))
	staff := staffUser(t, db)
	o := placeOrder(t, db, "sess-validate")

	if err := orderSvc.RequestPayment(staff, o.ID, decimal.Zero, "/media/inv.pdf"); !errors.Is(err, services.ErrMissingField) {
		t.Fatalf("zero amount: want ErrMissingField, got %v", err)
	}
	if err := orderSvc.RequestPayment(staff, o.ID, decimal.NewFromInt(100), ""); !errors.Is(err, services.ErrMissingField) {
		t.Fatalf("missing invoice: want ErrMissingField, got %v", err)
	}
	if err := orderSvc.Dispatch(staff, o.ID, "", "carrier"); !errors.Is(err, services.ErrMissingField) {
		t.Fatalf("missing docket: want ErrMissingField, got %v", err)
	}
}
