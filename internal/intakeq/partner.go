package intakeq

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/wellfront-health/intakeq-voice/pkg/logging"
)

const defaultPartnerBaseURL = "https://intakeq.com/api/partner"

// PartnerClient wraps the IntakeQ partner API, which manages practices
// rather than a single practice's data. Partner access is optional.
type PartnerClient struct {
	client *Client
}

// NewPartnerClient constructs a partner API client.
func NewPartnerClient(apiKey string, logger *logging.Logger, opts ...Option) *PartnerClient {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultPartnerBaseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return &PartnerClient{client: c}
}

// GetPractices lists practices registered under the partner account.
func (p *PartnerClient) GetPractices(ctx context.Context, page int) ([]Practice, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}

	var practices []Practice
	if err := p.client.doJSON(ctx, http.MethodGet, "/practice", q, nil, &practices); err != nil {
		return nil, fmt.Errorf("get practices: %w", err)
	}
	return practices, nil
}

// GetPracticeByID fetches a single practice. The upstream endpoint
// answers with a list; the first element wins.
func (p *PartnerClient) GetPracticeByID(ctx context.Context, id string) (*Practice, error) {
	q := url.Values{}
	q.Set("id", id)

	var practices []Practice
	if err := p.client.doJSON(ctx, http.MethodGet, "/practice", q, nil, &practices); err != nil {
		return nil, fmt.Errorf("get practice by id: %w", err)
	}
	if len(practices) == 0 {
		return nil, nil
	}
	return &practices[0], nil
}

// practiceKeyResponse is the typed shape of the practice key endpoint.
type practiceKeyResponse struct {
	APIKey string `json:"ApiKey"`
}

// GetPracticeAPIKey fetches the API key for a practice by its IntakeQ
// or external ID.
func (p *PartnerClient) GetPracticeAPIKey(ctx context.Context, idOrExternalID string) (string, error) {
	path := fmt.Sprintf("/practice/%s/key", url.PathEscape(strings.TrimSpace(idOrExternalID)))

	var resp practiceKeyResponse
	if err := p.client.doJSON(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return "", fmt.Errorf("get practice api key: %w", err)
	}
	return resp.APIKey, nil
}
