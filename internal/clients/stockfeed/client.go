// Package stockfeed is the client for the upstream paged stock dataset.
package stockfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"stockboard-service/internal/models"
)

// maxPages bounds the paging loop so a misbehaving feed (a lastKey that
// never drains) cannot spin forever.
const maxPages = 100

// PageResponse is the upstream page envelope.
type PageResponse struct {
	Items   []models.RawStockItem `json:"items"`
	Count   int                   `json:"count"`
	LastKey string                `json:"lastKey,omitempty"`
	HasMore bool                  `json:"hasMore,omitempty"`
}

// Client fetches the full stock dataset from the feed endpoint.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	logger      *logrus.Entry
}

// NewClient creates a stock feed client for the given endpoint.
func NewClient(baseURL string, logger *logrus.Logger) *Client {
	log := logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(5), 1), // 5 requests per second
		logger:      log.WithField("component", "stockfeed"),
	}
}

// FetchAll walks the feed with the opaque lastKey continuation token until
// hasMore goes false or the token drains, concatenating items in response
// order. Any transport error or non-2xx status aborts the whole fetch; no
// partial dataset is returned. onProgress, when set, receives the running
// item count after each page.
func (c *Client) FetchAll(ctx context.Context, onProgress func(itemCount int)) ([]models.StockRecord, int, error) {
	var records []models.StockRecord
	lastKey := ""
	pages := 0

	for {
		page, err := c.fetchPage(ctx, lastKey)
		if err != nil {
			return nil, pages, err
		}
		pages++

		for _, raw := range page.Items {
			records = append(records, raw.Normalize())
		}
		if onProgress != nil {
			onProgress(len(records))
		}

		c.logger.WithFields(logrus.Fields{
			"page":  pages,
			"items": len(records),
		}).Debug("Fetched stock feed page")

		if !page.HasMore || page.LastKey == "" {
			return records, pages, nil
		}
		lastKey = page.LastKey

		if pages >= maxPages {
			c.logger.WithField("pages", pages).Warn("Stock feed page cap reached, truncating fetch")
			return records, pages, nil
		}
	}
}

// fetchPage requests a single page, optionally continuing from lastKey.
func (c *Client) fetchPage(ctx context.Context, lastKey string) (*PageResponse, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	fullURL := c.baseURL
	if lastKey != "" {
		params := url.Values{}
		params.Set("lastKey", lastKey)
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stock feed request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("stock feed error (status %d): %s", resp.StatusCode, string(body))
	}

	var page PageResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("stock feed returned malformed page: %w", err)
	}
	return &page, nil
}
