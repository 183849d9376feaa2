package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mis883/janus-pharma-portal/internal/domain"
	"github.com/mis883/janus-pharma-portal/internal/repos"
)

// OrderService owns the order lifecycle:
//
//	Pending -> Processing -> Payment Requested -> Payment Submitted -> Dispatched
//
// with Cancelled reachable from any non-terminal state through an
// explicit cancel. Role and state guards live here, not in the
// presentation layer; every transition is atomic in the repo.
type OrderService struct {
	Carts  *repos.CartRepo
	Orders *repos.OrderRepo
}

func NewOrderService(carts *repos.CartRepo, orders *repos.OrderRepo) *OrderService {
	return &OrderService{Carts: carts, Orders: orders}
}

func newOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// Place turns the session cart into a Pending order. Lines snapshot
// the product as priced at add time and the inquiry total is frozen
// here; later catalog edits never reprice a placed order.
func (s *OrderService) Place(actor *domain.User, sessionID string) (domain.Order, error) {
	if actor == nil || actor.Role != domain.RoleCustomer {
		return domain.Order{}, ErrUnauthorized
	}

	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return domain.Order{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(items) == 0 {
		return domain.Order{}, ErrCartEmpty
	}

	o := domain.Order{
		ID:        newOrderID(),
		UserID:    actor.ID,
		UserName:  actor.Name,
		Status:    domain.OrderPending,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	lines := make([]domain.OrderLine, 0, len(items))
	total := decimal.Zero
	for _, it := range items {
		lines = append(lines, domain.OrderLine{
			OrderID:   o.ID,
			ProductID: it.ProductID,
			BrandName: it.BrandName,
			Packing:   it.Packing,
			MRP:       it.MRPAtAdd,
			Quantity:  it.Qty,
		})
		total = total.Add(it.Subtotal)
	}
	o.TotalInquiryValue = total

	if err := s.Orders.Create(o, lines); err != nil {
		return domain.Order{}, err
	}
	_ = s.Carts.Clear(cartID)
	return o, nil
}

// Get enforces read isolation: customers see only their own orders.
func (s *OrderService) Get(actor *domain.User, orderID string) (domain.Order, []domain.OrderLine, error) {
	if actor == nil {
		return domain.Order{}, nil, ErrUnauthorized
	}
	o, lines, err := s.Orders.Get(orderID)
	if err != nil {
		return domain.Order{}, nil, ErrNotFound
	}
	if !actor.Role.CanProcessOrders() && o.UserID != actor.ID {
		return domain.Order{}, nil, ErrNotFound
	}
	return o, lines, nil
}

func (s *OrderService) ListFor(actor *domain.User) ([]domain.Order, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if actor.Role.CanProcessOrders() {
		return s.Orders.ListAll()
	}
	return s.Orders.ListByUser(actor.ID)
}

func (s *OrderService) MarkProcessing(actor *domain.User, orderID string) error {
	if actor == nil || !actor.Role.CanProcessOrders() {
		return ErrUnauthorized
	}
	applied, err := s.Orders.MarkProcessing(orderID)
	if err != nil {
		return err
	}
	return s.resolve(applied, orderID)
}

// RequestPayment moves Pending/Processing to Payment Requested with
// the negotiated amount and the invoice document.
func (s *OrderService) RequestPayment(actor *domain.User, orderID string, finalAmount decimal.Decimal, invoiceURL string) error {
	if actor == nil || !actor.Role.CanProcessOrders() {
		return ErrUnauthorized
	}
	if !finalAmount.IsPositive() || invoiceURL == "" {
		return ErrMissingField
	}
	applied, err := s.Orders.RequestPayment(orderID, finalAmount, invoiceURL)
	if err != nil {
		return err
	}
	return s.resolve(applied, orderID)
}

// SubmitProof records the customer's payment screenshot. Only the
// owning customer may submit, and only while payment is requested.
func (s *OrderService) SubmitProof(actor *domain.User, orderID, proofURL string) error {
	if actor == nil || actor.Role != domain.RoleCustomer {
		return ErrUnauthorized
	}
	o, _, err := s.Orders.Get(orderID)
	if err != nil {
		return ErrNotFound
	}
	if o.UserID != actor.ID {
		return ErrUnauthorized
	}
	if proofURL == "" {
		return ErrMissingField
	}
	applied, err := s.Orders.SubmitProof(orderID, proofURL)
	if err != nil {
		return err
	}
	return s.resolve(applied, orderID)
}

// Dispatch ships the order. Payment Requested is accepted alongside
// Payment Submitted on purpose: staff may confirm payment out of band
// and ship before the customer uploads proof.
func (s *OrderService) Dispatch(actor *domain.User, orderID, docketNumber, transportDetails string) error {
	if actor == nil || !actor.Role.CanProcessOrders() {
		return ErrUnauthorized
	}
	if docketNumber == "" {
		return ErrMissingField
	}
	applied, err := s.Orders.Dispatch(orderID, docketNumber, transportDetails)
	if err != nil {
		return err
	}
	return s.resolve(applied, orderID)
}

func (s *OrderService) Cancel(actor *domain.User, orderID string) error {
	if actor == nil || !actor.Role.CanProcessOrders() {
		return ErrUnauthorized
	}
	applied, err := s.Orders.Cancel(orderID)
	if err != nil {
		return err
	}
	return s.resolve(applied, orderID)
}

func (s *OrderService) resolve(applied bool, orderID string) error {
	if applied {
		return nil
	}
	if _, _, err := s.Orders.Get(orderID); err != nil {
		return ErrNotFound
	}
	return ErrInvalidTransition
}
