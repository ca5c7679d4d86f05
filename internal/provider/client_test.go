package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lessonbox/internal/config"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.TestConfig().Provider
	cfg.BaseURL = server.URL
	return NewClient(cfg)
}

func TestFetchCatalog_PayloadKeyPriority(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{
			"lessonsByCategory wins",
			`{"lessonsByCategory":{"Figma":[]},"lessons":[1],"records":[2]}`,
			map[string]any{"Figma": []any{}},
		},
		{
			"lessons next",
			`{"lessons":[{"title":"A"}],"records":[2]}`,
			[]any{map[string]any{"title": "A"}},
		},
		{
			"records next",
			`{"records":[{"title":"B"}]}`,
			[]any{map[string]any{"title": "B"}},
		},
		{
			"whole body as fallback",
			`{"Figma":[{"title":"C"}]}`,
			map[string]any{"Figma": []any{map[string]any{"title": "C"}}},
		},
		{
			"null key falls through",
			`{"lessonsByCategory":null,"lessons":[{"title":"D"}]}`,
			[]any{map[string]any{"title": "D"}},
		},
		{
			"array body passes through",
			`[{"category":"Figma"}]`,
			[]any{map[string]any{"category": "Figma"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/webhook/lessons", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))

			got, err := client.FetchCatalog(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFetchCatalog_StatusError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.FetchCatalog(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.Status)
}

func TestFetchCatalog_MalformedBody(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{broken"))
	}))

	_, err := client.FetchCatalog(context.Background())
	assert.Error(t, err)
}

func TestFetchIntroCards_NumericSort(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/webhook/first-club", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"card_id":"card-10","title":"ten"},
			{"card_id":"card-2","title":"two"},
			{"card_id":"card-1","title":"one"}
		]`))
	}))

	cards, err := client.FetchIntroCards(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "card-1", cards[0]["card_id"])
	assert.Equal(t, "card-2", cards[1]["card_id"])
	assert.Equal(t, "card-10", cards[2]["card_id"])
}

func TestFetchFAQCards_SortField(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/webhook/faq", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"faq_cardId":"faq-3"},
			{"faq_cardId":"faq-1"}
		]`))
	}))

	cards, err := client.FetchFAQCards(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "faq-1", cards[0]["faq_cardId"])
}

func TestFetchCards_NonArrayBodyIsEmpty(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":"object"}`))
	}))

	cards, err := client.FetchFAQCards(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestClient_SendsUserAgent(t *testing.T) {
	var gotUA string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := client.FetchIntroCards(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "lessonbox-test/1.0", gotUA)
}
