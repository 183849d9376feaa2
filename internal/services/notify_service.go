package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mis883/janus-pharma-portal/internal/domain"
	"github.com/mis883/janus-pharma-portal/internal/repos"
)

// NotifyService formats order and product summaries for the external
// messaging channel. Dispatch is a deep link the user agent follows;
// fire-and-forget, no delivery confirmation exists.
type NotifyService struct {
	Settings *repos.SettingsRepo
}

func NewNotifyService(settings *repos.SettingsRepo) *NotifyService {
	return &NotifyService{Settings: settings}
}

// FormatOrder renders the fixed inquiry block. Same order in, same
// text out.
func (s *NotifyService) FormatOrder(o domain.Order, lines []domain.OrderLine) string {
	var b strings.Builder
	b.WriteString("*NEW ORDER INQUIRY*\n")
	fmt.Fprintf(&b, "*Order ID:* %s\n", o.ID)
	fmt.Fprintf(&b, "*Customer:* %s\n", o.UserName)
	b.WriteString("------------------\n")
	totalItems := 0
	for i, l := range lines {
		fmt.Fprintf(&b, "%d. %s (%s) x %d\n", i+1, l.BrandName, l.Packing, l.Quantity)
		totalItems += l.Quantity
	}
	fmt.Fprintf(&b, "\nTotal Items: %d\n", totalItems)
	b.WriteString("Order placed via App. Please process immediately.")
	return b.String()
}

func (s *NotifyService) FormatProduct(p domain.Product, caption string) string {
	var b strings.Builder
	if caption != "" {
		b.WriteString(caption)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "*%s*", p.BrandName)
	if p.Composition != "" {
		fmt.Fprintf(&b, "\n%s", p.Composition)
	}
	if p.Packing != "" {
		fmt.Fprintf(&b, "\nPacking: %s", p.Packing)
	}
	if p.MRP.IsPositive() {
		fmt.Fprintf(&b, "\nMRP: %s", p.MRP.StringFixed(2))
	}
	return b.String()
}

// Link builds the wa.me handoff URL for the configured company number.
func (s *NotifyService) Link(text string) (string, error) {
	settings, err := s.Settings.Get()
	if err != nil {
		return "", err
	}
	if settings.WhatsAppNumber == "" {
		return "", ErrMissingField
	}
	return "https://wa.me/" + settings.WhatsAppNumber + "?text=" + url.QueryEscape(text), nil
}
