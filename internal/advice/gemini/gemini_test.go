package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/zentracker/internal/advice"
	"github.com/MrJamesThe3rd/zentracker/internal/advice/gemini"
	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

func candidate(text string) map[string]any {
	return map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
}

func newClient(t *testing.T, handler http.HandlerFunc) *gemini.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := gemini.New(context.Background(), gemini.Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	return c
}

var samples = []advice.Sample{
	{Type: transaction.TypeExpense, Amount: decimal.NewFromInt(500), Category: "FOOD & DINING", Note: "pizza night"},
}

func TestClient_Advise(t *testing.T) {
	var body string

	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)

		assert.Contains(t, r.URL.Path, gemini.DefaultModel)
		assert.True(t, strings.HasSuffix(r.URL.Path, ":generateContent"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(candidate(
			`[{"title":"Eating out","description":"You ordered in a lot.","suggestion":"Cook twice a week.","sentiment":"neutral"}]`,
		))
	})

	got, err := c.Advise(context.Background(), samples)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Eating out", got[0].Title)
	assert.Equal(t, advice.SentimentNeutral, got[0].Sentiment)

	assert.Contains(t, body, "pizza night")
	assert.Contains(t, body, "exactly 3")
	assert.Contains(t, body, "application/json")
}

func TestClient_Advise_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		schema  bool
	}{
		{
			name: "ServerError",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"error":{"code":500,"message":"boom"}}`, http.StatusInternalServerError)
			},
		},
		{
			name: "NotJSON",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(candidate("here are some tips"))
			},
			schema: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, tt.handler)

			_, err := c.Advise(context.Background(), samples)
			require.Error(t, err)

			if tt.schema {
				assert.ErrorIs(t, err, advice.ErrSchema)
			}
		})
	}
}

func TestClient_Advise_EmptyText(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(candidate(""))
	})

	got, err := c.Advise(context.Background(), samples)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewAdvisor_NoKey(t *testing.T) {
	a, err := gemini.NewAdvisor(context.Background(), gemini.Config{})
	require.NoError(t, err)

	_, err = a.Advise(context.Background(), samples)
	assert.ErrorIs(t, err, advice.ErrUnavailable)
}
