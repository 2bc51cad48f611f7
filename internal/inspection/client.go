package inspection

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const recordsPath = "/api/inspection-records"

// Filter narrows which inspection records the service returns. Zero-value
// fields are omitted from the query.
type Filter struct {
	From      time.Time
	To        time.Time
	Shift     string
	Material  string
	Operation string
	Gauge     string
}

// Client fetches inspection records from the remote inspection service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the service at baseURL. A zero timeout
// means no client-side timeout beyond the caller's context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchRecords retrieves the inspection records matching the filter.
func (c *Client) FetchRecords(ctx context.Context, filter Filter) ([]Record, error) {
	endpoint, err := url.Parse(c.baseURL + recordsPath)
	if err != nil {
		return nil, fmt.Errorf("invalid service URL: %w", err)
	}

	query := endpoint.Query()
	if !filter.From.IsZero() {
		query.Set("from_date", filter.From.Format("2006-01-02"))
	}
	if !filter.To.IsZero() {
		query.Set("to_date", filter.To.Format("2006-01-02"))
	}
	if filter.Shift != "" {
		query.Set("shift", filter.Shift)
	}
	if filter.Material != "" {
		query.Set("material", filter.Material)
	}
	if filter.Operation != "" {
		query.Set("operation", filter.Operation)
	}
	if filter.Gauge != "" {
		query.Set("gauge", filter.Gauge)
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inspection service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("inspection service returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode inspection records: %w", err)
	}
	return records, nil
}
