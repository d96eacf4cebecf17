// Package ticketbox searches the Ticketbox events API.
package ticketbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/anonm/ticketbot/internal/domain"
)

// Client queries the vendor search endpoint.
type Client struct {
	baseURL string
	limit   int
	http    *http.Client
}

// NewClient creates a search client. limit caps results per query.
func NewClient(baseURL string, limit int) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		limit:   limit,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type searchResponse struct {
	Data struct {
		Results []searchResult `json:"results"`
	} `json:"data"`
}

type searchResult struct {
	OriginalID int64           `json:"originalId"`
	Name       string          `json:"name"`
	Day        json.RawMessage `json:"day"`
	Price      int64           `json:"price"`
	Deeplink   string          `json:"deeplink"`
}

// Search queries events matching query and maps them to domain events.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Event, error) {
	u := fmt.Sprintf("%s/search/v2/events?limit=%d&page=1&q=%s",
		c.baseURL, c.limit, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call search api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search api: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	events := make([]domain.Event, 0, len(parsed.Data.Results))
	for _, r := range parsed.Data.Results {
		events = append(events, domain.Event{
			ID:       r.OriginalID,
			Name:     r.Name,
			Day:      parseDay(r.Day),
			Price:    r.Price,
			Deeplink: r.Deeplink,
		})
	}
	return events, nil
}

// parseDay accepts the two shapes the API has been seen to return: an
// RFC 3339 string or epoch milliseconds. Unparseable values become the
// zero time rather than failing the whole result set.
func parseDay(raw json.RawMessage) time.Time {
	if len(raw) == 0 {
		return time.Time{}
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if t, err := time.Parse(time.RFC3339, str); err == nil {
			return t
		}
		if millis, err := strconv.ParseInt(str, 10, 64); err == nil {
			return time.UnixMilli(millis)
		}
		return time.Time{}
	}

	var millis int64
	if err := json.Unmarshal(raw, &millis); err == nil {
		return time.UnixMilli(millis)
	}
	return time.Time{}
}
