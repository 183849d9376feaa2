package services

import (
	"sort"
	"time"

	"github.com/mis883/janus-pharma-portal/internal/domain"
)

// HistorySource supplies a customer's past purchase events. The
// production binding derives them from the order ledger; tests may
// substitute a fixed window.
type HistorySource interface {
	History(userID string) ([]domain.OrderHistoryItem, error)
}

type ProductSource interface {
	Get(id string) (domain.Product, error)
}

// RestockService suggests products a customer is likely due to
// reorder. Pure read; it never writes to the ledger.
type RestockService struct {
	History  HistorySource
	Products ProductSource
}

func NewRestockService(h HistorySource, p ProductSource) *RestockService {
	return &RestockService{History: h, Products: p}
}

// Suggestions flags a product when the time since its last order
// exceeds the mean gap between its past orders. One order is no
// signal: products with fewer than two events are never suggested.
func (s *RestockService) Suggestions(userID string, now time.Time) ([]domain.Product, error) {
	hist, err := s.History.History(userID)
	if err != nil {
		return nil, err
	}

	byProduct := map[string][]time.Time{}
	for _, h := range hist {
		t, err := time.Parse(time.RFC3339, h.OrderDate)
		if err != nil {
			continue
		}
		byProduct[h.ProductID] = append(byProduct[h.ProductID], t)
	}

	ids := make([]string, 0, len(byProduct))
	for id := range byProduct {
		ids = append(ids, id)
	}
	sort.Strings(ids) // stable suggestion order

	var out []domain.Product
	for _, id := range ids {
		times := byProduct[id]
		if len(times) < 2 {
			continue
		}
		sort.Slice(times, func(i, j int) bool { return times[i].After(times[j]) })

		var totalGap time.Duration
		for i := 0; i < len(times)-1; i++ {
			totalGap += times[i].Sub(times[i+1])
		}
		meanGap := totalGap / time.Duration(len(times)-1)

		if now.Sub(times[0]) > meanGap {
			p, err := s.Products.Get(id)
			if err != nil {
				continue // product left the catalog
			}
			out = append(out, p)
		}
	}
	return out, nil
}
