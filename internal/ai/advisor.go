// Package ai wraps the generative collaborator behind a best-effort
// contract: every call degrades to a fixed fallback when the provider
// is unconfigured or unreachable, and never surfaces a fatal error.
package ai

import (
	"context"

	"github.com/mis883/janus-pharma-portal/internal/domain"
)

// Fallbacks returned when the provider is missing or failing.
const (
	MsgUnavailable    = "AI Assistant is unavailable (Missing API Key)."
	MsgQueryFailed    = "Sorry, I encountered an error processing your request."
	MsgCaptionMissing = "AI Service Unavailable"
	MsgCaptionFailed  = "Error generating caption."
	MsgAssistMissing  = "AI is not configured."
	MsgAssistFailed   = "Error connecting to AI."
)

type Advisor interface {
	// AnalyzeQuery recommends catalog products for a free-text need.
	AnalyzeQuery(ctx context.Context, query string, catalog []domain.Product) string
	// Caption writes a short shareable sales message for one product.
	Caption(ctx context.Context, p domain.Product) string
	// Tags suggests search keywords for a product; empty on failure.
	Tags(ctx context.Context, brandName, composition string) []string
	// IdentifyFromImage matches a package photo against the catalog;
	// empty string when nothing could be read.
	IdentifyFromImage(ctx context.Context, jpeg []byte, catalog []domain.Product) string
	// AdminAssist answers a back-office question over a data summary.
	AdminAssist(ctx context.Context, query, contextData string) string
}
