package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mis883/janus-pharma-portal/internal/ai"
	"github.com/mis883/janus-pharma-portal/internal/domain"
)

func TestUnconfiguredAdvisorDegradesWithoutNetwork(t *testing.T) {
	g := ai.NewGemini("")
	// Any outbound call would blow up loudly.
	g.HTTP = &http.Client{Transport: failingTransport{}}
	ctx := context.Background()
	catalog := []domain.Product{{ID: "p-1", BrandName: "CardioSafe-10"}}

	require.Equal(t, ai.MsgUnavailable, g.AnalyzeQuery(ctx, "something for cholesterol", catalog))
	require.Equal(t, ai.MsgCaptionMissing, g.Caption(ctx, catalog[0]))
	require.Equal(t, ai.MsgAssistMissing, g.AdminAssist(ctx, "sales summary", "ctx"))
	require.Nil(t, g.Tags(ctx, "CardioSafe-10", "Atorvastatin 10mg"))
	require.Equal(t, "", g.IdentifyFromImage(ctx, []byte{0xff}, catalog))
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	panic("unconfigured advisor must not reach the network")
}

func fakeGemini(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}
		resp := map[string]any{
			"candidates": []any{
				map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": reply}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnalyzeQueryUsesProviderText(t *testing.T) {
	srv := fakeGemini(t, "CardioSafe-10 fits that profile.")
	g := ai.NewGemini("test-key")
	g.BaseURL = srv.URL

	got := g.AnalyzeQuery(context.Background(), "statin options?", []domain.Product{{BrandName: "CardioSafe-10"}})
	require.Equal(t, "CardioSafe-10 fits that profile.", got)
}

func TestTagsParseCommaList(t *testing.T) {
	srv := fakeGemini(t, "Acidity, Gastritis , Stomach Pain,, PPI")
	g := ai.NewGemini("test-key")
	g.BaseURL = srv.URL

	got := g.Tags(context.Background(), "GastroCalm", "Pantoprazole 40mg")
	require.Equal(t, []string{"Acidity", "Gastritis", "Stomach Pain", "PPI"}, got)
}

func TestProviderErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)
	g := ai.NewGemini("test-key")
	g.BaseURL = srv.URL
	ctx := context.Background()

	require.Equal(t, ai.MsgQueryFailed, g.AnalyzeQuery(ctx, "q", nil))
	require.Equal(t, ai.MsgCaptionFailed, g.Caption(ctx, domain.Product{BrandName: "X"}))
	require.Equal(t, ai.MsgAssistFailed, g.AdminAssist(ctx, "q", "ctx"))
	require.Nil(t, g.Tags(ctx, "X", ""))
}
