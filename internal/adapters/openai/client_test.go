package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itinerate/internal/adapters/openai"
	"itinerate/internal/domain"
)

func completion(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4o-mini",
		"choices": []any{map[string]any{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
	}
}

func TestGenerate_UsesJSONSchemaFormat(t *testing.T) {
	var got map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completion(`{"itinerary_title":"T","itinerary_details":[]}`))
	}))
	defer ts.Close()

	c, err := openai.New("sk-test", "", ts.URL+"/v1")
	require.NoError(t, err)

	schema := &domain.Schema{Type: domain.TypeObject, Required: []string{"itinerary_title"}}
	out, err := c.Generate(context.Background(), domain.NarrativeRequest{Prompt: "plan", Schema: schema})
	require.NoError(t, err)
	assert.JSONEq(t, `{"itinerary_title":"T","itinerary_details":[]}`, string(out))

	rf, ok := got["response_format"].(map[string]any)
	require.True(t, ok, "response_format missing: %+v", got)
	assert.Equal(t, "json_schema", rf["type"])
	js := rf["json_schema"].(map[string]any)
	assert.Equal(t, "itinerary", js["name"])
	assert.Equal(t, "object", js["schema"].(map[string]any)["type"])
	assert.Equal(t, openai.DefaultModel, got["model"])
}

func TestGenerate_EmptyChoice(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completion(""))
	}))
	defer ts.Close()

	c, err := openai.New("sk-test", "gpt-4o-mini", ts.URL+"/v1")
	require.NoError(t, err)
	_, err = c.Generate(context.Background(), domain.NarrativeRequest{Prompt: "plan"})
	assert.ErrorIs(t, err, openai.ErrNoContent)
}

func TestGenerate_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad schema","type":"invalid_request_error"}}`))
	}))
	defer ts.Close()

	c, err := openai.New("sk-test", "gpt-4o-mini", ts.URL+"/v1")
	require.NoError(t, err)
	_, err = c.Generate(context.Background(), domain.NarrativeRequest{Prompt: "plan"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad schema")
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := openai.New("", "", "")
	assert.Error(t, err)
}
