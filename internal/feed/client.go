package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/martatracker-data/internal/common/config"
	"github.com/martatracker-data/internal/common/logger"
)

// ErrUpstream marks any failure of the feed endpoint itself: transport
// errors, timeouts, non-2xx statuses and unparseable bodies. Callers map it
// to a bad-gateway outcome.
var ErrUpstream = errors.New("feed upstream failure")

// Client calls the social feed recent-search endpoint.
type Client struct {
	searchURL  string
	token      string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient builds a search client. token is the bearer credential fetched
// once at process start from the parameter store.
func NewClient(cfg config.FeedConfig, token string, log logger.Logger) *Client {
	return &Client{
		searchURL: cfg.SearchURL,
		token:     token,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: log,
	}
}

// Search fetches posts newer than sinceID, newest first. An empty sinceID
// requests without a lower bound.
func (c *Client) Search(ctx context.Context, sinceID string) (*SearchResponse, error) {
	url := c.searchURL
	if sinceID != "" {
		url = fmt.Sprintf("%s&since_id=%s", url, sinceID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating search request: %v: %w", err, ErrUpstream)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	c.logger.Debug("Searching feed", "since_id", sinceID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to call feed endpoint", "error", err)
		return nil, fmt.Errorf("calling feed endpoint: %v: %w", err, ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Feed endpoint returned error status",
			"status_code", resp.StatusCode,
			"response_body", string(body))
		return nil, fmt.Errorf("feed endpoint returned status %d: %w", resp.StatusCode, ErrUpstream)
	}

	var parsed SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding search response: %v: %w", err, ErrUpstream)
	}

	return &parsed, nil
}
