package gemini

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"google.golang.org/genai"

	"itinerate/internal/adapters/observability"
	"itinerate/internal/domain"
)

const DefaultModel = "gemini-2.5-flash"

var ErrNoContent = errors.New("gemini: no content generated")

// contentGenerator is the slice of *genai.Models we use.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Client struct {
	models      contentGenerator
	model       string
	temperature float32
}

func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return newWithModels(gc.Models, model), nil
}

func newWithModels(m contentGenerator, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{models: m, model: model, temperature: 0.7}
}

// Generate implements domain.NarrativeGenerator. Output is constrained to
// JSON matching req.Schema.
func (c *Client) Generate(ctx context.Context, req domain.NarrativeRequest) ([]byte, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(c.temperature),
		ResponseMIMEType: "application/json",
	}
	if req.Schema != nil {
		cfg.ResponseSchema = toSchema(req.Schema)
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), cfg)
	status := 200
	if err != nil {
		status = 0
	}
	observability.ObserveExternal("gemini", c.model, status, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ErrNoContent
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, ErrNoContent
	}
	return []byte(text), nil
}

var schemaTypes = map[domain.SchemaType]genai.Type{
	domain.TypeObject:  genai.TypeObject,
	domain.TypeArray:   genai.TypeArray,
	domain.TypeString:  genai.TypeString,
	domain.TypeInteger: genai.TypeInteger,
	domain.TypeNumber:  genai.TypeNumber,
}

// toSchema converts our contract into Gemini's schema dialect. Required
// properties are ordered first so the model emits them early.
func toSchema(s *domain.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        schemaTypes[s.Type],
		Description: s.Description,
		Items:       toSchema(s.Items),
	}
	if len(s.Required) > 0 {
		out.Required = append([]string(nil), s.Required...)
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = toSchema(p)
		}
		out.PropertyOrdering = propertyOrder(s)
	}
	return out
}

func propertyOrder(s *domain.Schema) []string {
	order := make([]string, 0, len(s.Properties))
	seen := make(map[string]bool, len(s.Properties))
	for _, r := range s.Required {
		if _, ok := s.Properties[r]; ok && !seen[r] {
			order = append(order, r)
			seen[r] = true
		}
	}
	var rest []string
	for name := range s.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}
