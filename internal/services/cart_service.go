package services

import (
	"github.com/shopspring/decimal"

	"github.com/mis883/janus-pharma-portal/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

func (s *CartService) Add(sessionID, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return ErrNotFound
	}
	return s.Carts.UpsertItem(cartID, productID, qty, p.MRP)
}

func (s *CartService) SetQty(sessionID, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.SetQty(cartID, productID, qty)
}

func (s *CartService) Remove(sessionID, productID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.Remove(cartID, productID)
}

type CartView struct {
	Items []repos.CartItemRow
	Total decimal.Decimal
	Count int
}

func (s *CartService) View(sessionID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return CartView{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return CartView{}, err
	}
	cv := CartView{Items: items, Total: decimal.Zero}
	for _, it := range items {
		cv.Total = cv.Total.Add(it.Subtotal)
		cv.Count += it.Qty
	}
	return cv, nil
}
