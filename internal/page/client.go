package page

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/radarimovel/backend/internal/models"
)

const analyzePath = "/v1/analyze"

// AnalyzeClient is the page's view of the analysis service.
type AnalyzeClient interface {
	Analyze(ctx context.Context, query, city string) (*models.AnalyzeResponse, error)
}

// Client calls the analysis service. An empty base URL means same-origin
// deployment behind a shared host.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(baseURL string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}
}

// Analyze posts the query and decodes the report. A non-2xx answer becomes an
// error carrying the response body verbatim, or "HTTP error <status>" when
// the body is empty; the page shows that text in its error banner.
func (c *Client) Analyze(ctx context.Context, query, city string) (*models.AnalyzeResponse, error) {
	payload, err := json.Marshal(models.AnalyzeRequest{Query: query, City: city})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.WithFields(logrus.Fields{
		"query": query,
		"city":  city,
	}).Debug("Submitting analysis")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := strings.TrimSpace(string(body))
		if message == "" {
			message = fmt.Sprintf("HTTP error %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%s", message)
	}

	var response models.AnalyzeResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &response, nil
}
