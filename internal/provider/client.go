// Package provider is the HTTP client for the remote content endpoints:
// the lesson catalog and the two card decks (club intro, FAQ). It owns the
// transport contract only; payload semantics live in the catalog package.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"lessonbox/internal/config"
)

// StatusError reports a non-2xx provider response.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned HTTP %d", e.Status)
}

// Card is one entry of a card deck; the shape is provider-defined.
type Card map[string]any

type Client struct {
	httpClient *http.Client
	baseURL    string
	catalog    string
	intro      string
	faq        string
	userAgent  string
	collator   *collate.Collator
}

func NewClient(cfg config.ProviderConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		baseURL:    cfg.BaseURL,
		catalog:    cfg.CatalogPath,
		intro:      cfg.IntroPath,
		faq:        cfg.FAQPath,
		userAgent:  cfg.UserAgent,
		collator:   collate.New(language.Und, collate.Numeric, collate.IgnoreCase),
	}
}

// FetchCatalog retrieves the raw lesson payload. The lessons live at the
// first present key of lessonsByCategory, lessons, records; a body without
// any of them is returned whole.
func (c *Client) FetchCatalog(ctx context.Context) (any, error) {
	var body any
	if err := c.getJSON(ctx, c.catalog, &body); err != nil {
		return nil, err
	}

	if obj, ok := body.(map[string]any); ok {
		for _, key := range []string{"lessonsByCategory", "lessons", "records"} {
			if v, ok := obj[key]; ok && v != nil {
				return v, nil
			}
		}
	}
	return body, nil
}

// FetchIntroCards retrieves the club-intro deck, sorted by card_id.
func (c *Client) FetchIntroCards(ctx context.Context) ([]Card, error) {
	return c.fetchCards(ctx, c.intro, "card_id")
}

// FetchFAQCards retrieves the FAQ deck, sorted by faq_cardId.
func (c *Client) FetchFAQCards(ctx context.Context) ([]Card, error) {
	return c.fetchCards(ctx, c.faq, "faq_cardId")
}

// fetchCards expects a JSON array of card objects and sorts it ascending by
// the deck's identifier field with numeric-aware comparison, so "card-2"
// precedes "card-10". A non-array body yields an empty deck.
func (c *Client) fetchCards(ctx context.Context, path, idField string) ([]Card, error) {
	var body any
	if err := c.getJSON(ctx, path, &body); err != nil {
		return nil, err
	}

	list, ok := body.([]any)
	if !ok {
		return []Card{}, nil
	}

	cards := make([]Card, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			cards = append(cards, Card(obj))
		}
	}

	sort.SliceStable(cards, func(i, j int) bool {
		left, _ := cards[i][idField].(string)
		right, _ := cards[j][idField].(string)
		return c.collator.CompareString(left, right) < 0
	})

	return cards, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
