package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"itinerate/internal/domain"
)

type fakeModels struct {
	resp *genai.GenerateContentResponse
	err  error

	gotModel  string
	gotPrompt string
	gotConfig *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.gotModel = model
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.gotPrompt = contents[0].Parts[0].Text
	}
	f.gotConfig = cfg
	return f.resp, f.err
}

func textResponse(s string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: s}}},
		}},
	}
}

func contract() *domain.Schema {
	return &domain.Schema{
		Type: domain.TypeObject,
		Properties: map[string]*domain.Schema{
			"itinerary_title": {Type: domain.TypeString},
			"itinerary_details": {
				Type: domain.TypeArray,
				Items: &domain.Schema{
					Type: domain.TypeObject,
					Properties: map[string]*domain.Schema{
						"day":              {Type: domain.TypeInteger},
						"activities_names": {Type: domain.TypeArray, Items: &domain.Schema{Type: domain.TypeString}},
					},
					Required: []string{"day", "activities_names"},
				},
			},
		},
		Required: []string{"itinerary_title", "itinerary_details"},
	}
}

func TestGenerate_SendsSchemaAndReturnsText(t *testing.T) {
	fm := &fakeModels{resp: textResponse(`{"itinerary_title":"T","itinerary_details":[]}`)}
	c := newWithModels(fm, "")

	out, err := c.Generate(context.Background(), domain.NarrativeRequest{Prompt: "hello", Schema: contract()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"itinerary_title":"T","itinerary_details":[]}`, string(out))

	assert.Equal(t, DefaultModel, fm.gotModel)
	assert.Equal(t, "hello", fm.gotPrompt)
	require.NotNil(t, fm.gotConfig)
	assert.Equal(t, "application/json", fm.gotConfig.ResponseMIMEType)

	s := fm.gotConfig.ResponseSchema
	require.NotNil(t, s)
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"itinerary_title", "itinerary_details"}, s.Required)
	assert.Equal(t, []string{"itinerary_title", "itinerary_details"}, s.PropertyOrdering)
	days := s.Properties["itinerary_details"]
	require.NotNil(t, days)
	assert.Equal(t, genai.TypeArray, days.Type)
	assert.Equal(t, genai.TypeInteger, days.Items.Properties["day"].Type)
	assert.Equal(t, genai.TypeString, days.Items.Properties["activities_names"].Items.Type)
}

func TestGenerate_Errors(t *testing.T) {
	boom := errors.New("quota exceeded")
	_, err := newWithModels(&fakeModels{err: boom}, "m").Generate(context.Background(), domain.NarrativeRequest{Prompt: "p"})
	assert.ErrorIs(t, err, boom)

	_, err = newWithModels(&fakeModels{resp: &genai.GenerateContentResponse{}}, "m").Generate(context.Background(), domain.NarrativeRequest{Prompt: "p"})
	assert.ErrorIs(t, err, ErrNoContent)

	_, err = newWithModels(&fakeModels{resp: textResponse("   ")}, "m").Generate(context.Background(), domain.NarrativeRequest{Prompt: "p"})
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestPropertyOrder_RequiredFirstThenSorted(t *testing.T) {
	s := &domain.Schema{
		Type: domain.TypeObject,
		Properties: map[string]*domain.Schema{
			"b": {Type: domain.TypeString}, "a": {Type: domain.TypeString}, "z": {Type: domain.TypeString},
		},
		Required: []string{"z"},
	}
	assert.Equal(t, []string{"z", "a", "b"}, propertyOrder(s))
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(context.Background(), "", "")
	assert.Error(t, err)
}
