package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mis883/janus-pharma-portal/internal/domain"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	textModel      = "gemini-2.5-flash"
	visionModel    = "gemini-2.5-flash-image"
)

// Gemini calls the Generative Language REST API. A zero API key makes
// every method return its fallback without touching the network.
type Gemini struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

func NewGemini(apiKey string) *Gemini {
	return &Gemini{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

type genPart struct {
	Text       string         `json:"text,omitempty"`
	InlineData *genInlineData `json:"inline_data,omitempty"`
}

type genInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type genRequest struct {
	Contents []struct {
		Parts []genPart `json:"parts"`
	} `json:"contents"`
}

type genResponse struct {
	Candidates []struct {
		Content struct {
			Parts []genPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) generate(ctx context.Context, model string, parts []genPart) (string, error) {
	var req genRequest
	req.Contents = append(req.Contents, struct {
		Parts []genPart `json:"parts"`
	}{Parts: parts})

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.BaseURL, model, g.APIKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.HTTP.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: status %d", resp.StatusCode)
	}
	var out genResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}

func catalogContext(catalog []domain.Product) string {
	var b strings.Builder
	for _, p := range catalog {
		b.WriteString("- " + p.BrandName)
		if p.Composition != "" {
			b.WriteString(" (" + p.Composition + ")")
		}
		div := p.Division
		if div == "" {
			div = "General"
		}
		fmt.Fprintf(&b, ": %s, Stock: %s, Tags: %s\n", div, p.StockStatus, strings.Join(p.Tags(), ", "))
	}
	return b.String()
}

func (g *Gemini) AnalyzeQuery(ctx context.Context, query string, catalog []domain.Product) string {
	if g.APIKey == "" {
		return MsgUnavailable
	}
	prompt := fmt.Sprintf(`You are a smart pharma assistant for a B2B ordering portal.

User Query: %q

Here is the available Product Catalog:
%s
Task:
1. Identify which products from the catalog match the user's need (symptoms, generic name, brand, or medical context).
2. Provide a brief, professional recommendation list based strictly on the catalog above.
3. If no product matches, politely say so.
4. Keep the response short (under 50 words) and sales-oriented.`, query, catalogContext(catalog))

	text, err := g.generate(ctx, textModel, []genPart{{Text: prompt}})
	if err != nil {
		return MsgQueryFailed
	}
	return text
}

func (g *Gemini) Caption(ctx context.Context, p domain.Product) string {
	if g.APIKey == "" {
		return MsgCaptionMissing
	}
	compText := ""
	if p.Composition != "" {
		compText = fmt.Sprintf(" composed of %q", p.Composition)
	}
	prompt := fmt.Sprintf("Write a short, professional, and catchy sales message (max 40 words) for a pharmaceutical distributor to share on WhatsApp about the product: %q%s. Mention it is available at Janus Biotech. Add appropriate emojis.", p.BrandName, compText)

	text, err := g.generate(ctx, textModel, []genPart{{Text: prompt}})
	if err != nil {
		return MsgCaptionFailed
	}
	return text
}

func (g *Gemini) Tags(ctx context.Context, brandName, composition string) []string {
	if g.APIKey == "" {
		return nil
	}
	compText := ""
	if composition != "" {
		compText = fmt.Sprintf(" which contains %q", composition)
	}
	prompt := fmt.Sprintf(`Generate 5-7 relevant search tags for the item: %q%s.
Include: Common symptoms it treats (if medicine), Category (e.g. Antibiotic, Gift, Bag), and alternative common names.
Return ONLY a comma-separated list of keywords. No explanations.
Example Output: Acidity, Gastritis, Stomach Pain, PPI, Pantoprazole`, brandName, compText)

	text, err := g.generate(ctx, textModel, []genPart{{Text: prompt}})
	if err != nil {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(text, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (g *Gemini) IdentifyFromImage(ctx context.Context, jpeg []byte, catalog []domain.Product) string {
	if g.APIKey == "" || len(jpeg) == 0 {
		return ""
	}
	names := make([]string, 0, len(catalog))
	for _, p := range catalog {
		n := p.BrandName
		if p.Composition != "" {
			n += " (" + p.Composition + ")"
		}
		names = append(names, n)
	}
	prompt := fmt.Sprintf(`Analyze this image of a medicine or product.
1. Read the brand name or text from the package.
2. Check if it matches or is very similar to any product in this list: [%s].
3. If a match is found, return ONLY the Brand Name from the list.
4. If no exact match is found, return the most prominent text (Brand or Composition) found on the image.`, strings.Join(names, ", "))

	parts := []genPart{
		{InlineData: &genInlineData{MimeType: "image/jpeg", Data: base64.StdEncoding.EncodeToString(jpeg)}},
		{Text: prompt},
	}
	text, err := g.generate(ctx, visionModel, parts)
	if err != nil {
		return ""
	}
	return text
}

func (g *Gemini) AdminAssist(ctx context.Context, query, contextData string) string {
	if g.APIKey == "" {
		return MsgAssistMissing
	}
	prompt := fmt.Sprintf(`You are an intelligent Admin Assistant for a Pharma Company.
Current Data Context: %s

Admin Query: %s

Provide a professional, analytical, or creative response to help the admin.`, contextData, query)

	text, err := g.generate(ctx, textModel, []genPart{{Text: prompt}})
	if err != nil {
		return MsgAssistFailed
	}
	return text
}
