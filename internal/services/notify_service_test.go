package services_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mis883/janus-pharma-portal/internal/domain"
	"github.com/mis883/janus-pharma-portal/internal/repos"
	"github.com/mis883/janus-pharma-portal/internal/services"
)

func TestFormatOrderIsDeterministic(t *testing.T) {
	svc := &services.NotifyService{}
	o := domain.Order{ID: "ORD-TEST01", UserName: "MediCare Pharma"}
	lines := []domain.OrderLine{
		{BrandName: "CardioSafe-10", Packing: "10x10 Alu-Alu", Quantity: 10},
		{BrandName: "OrthoFlex Gel", Packing: "30g Tube", Quantity: 5},
	}

	want := "*NEW ORDER INQUIRY*\n" +
		"*Order ID:* ORD-TEST01\n" +
		"*Customer:* MediCare Pharma\n" +
		"------------------\n" +
		"1. CardioSafe-10 (10x10 Alu-Alu) x 10\n" +
		"2. OrthoFlex Gel (30g Tube) x 5\n" +
		"\nTotal Items: 15\n" +
		"Order placed via App. Please process immediately."

	require.Equal(t, want, svc.FormatOrder(o, lines))
	require.Equal(t, want, svc.FormatOrder(o, lines), "same input must render the same text")
}

func TestFormatProductSkipsEmptySections(t *testing.T) {
	svc := &services.NotifyService{}
	promo := domain.Product{BrandName: "MR Bag", Packing: "1 Unit", MRP: decimal.Zero}
	text := svc.FormatProduct(promo, "")
	require.Equal(t, "*MR Bag*\nPacking: 1 Unit", text)

	full := domain.Product{BrandName: "CardioSafe-10", Composition: "Atorvastatin 10mg", Packing: "10x10", MRP: decimal.NewFromInt(120)}
	withCaption := svc.FormatProduct(full, "Trusted by cardiologists.")
	require.True(t, strings.HasPrefix(withCaption, "Trusted by cardiologists.\n\n"))
	require.Contains(t, withCaption, "MRP: 120.00")
}

func TestLinkUsesConfiguredNumberAndEscapes(t *testing.T) {
	db := memdb(t)
	svc := services.NewNotifyService(repos.NewSettingsRepo(db))

	link, err := svc.Link("*NEW ORDER INQUIRY*\nline two & more")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="), link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	require.Equal(t, "*NEW ORDER INQUIRY*\nline two & more", u.Query().Get("text"))
}
