package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultCount = 5

// Item is one news result relevant to the queried address.
type Item struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	DatePublished string `json:"datePublished"`
	Source        string `json:"source"`
}

// searchResponse mirrors the Bing News Search payload, only the fields we read.
type searchResponse struct {
	Value []struct {
		Name          string `json:"name"`
		URL           string `json:"url"`
		DatePublished string `json:"datePublished"`
		Provider      []struct {
			Name string `json:"name"`
		} `json:"provider"`
	} `json:"value"`
}

type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(endpoint, apiKey string, logger *logrus.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 12 * time.Second,
		},
		logger: logger,
	}
}

// FetchNews searches recent news around the query + city pair. The analysis
// must never fail because of the news provider: without an API key, or on a
// non-200 upstream answer, it returns an empty list.
func (c *Client) FetchNews(ctx context.Context, city, query string) ([]Item, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query+" "+city)
	params.Set("mkt", "pt-BR")
	params.Set("count", strconv.Itoa(defaultCount))
	params.Set("sortBy", "Date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	c.logger.WithFields(logrus.Fields{
		"endpoint": c.endpoint,
		"query":    query,
		"city":     city,
	}).Debug("Fetching news")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read news response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"body_size":   len(body),
		}).Warn("News API returned non-200, continuing without news")
		return nil, nil
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal news response: %w", err)
	}

	items := make([]Item, 0, defaultCount)
	for _, v := range parsed.Value {
		if len(items) == defaultCount {
			break
		}
		item := Item{
			Title:         v.Name,
			URL:           v.URL,
			DatePublished: v.DatePublished,
		}
		if len(v.Provider) > 0 {
			item.Source = v.Provider[0].Name
		}
		items = append(items, item)
	}

	c.logger.WithField("items", len(items)).Debug("News fetched")
	return items, nil
}
