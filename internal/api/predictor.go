package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/prediction"
)

const (
	requestsPerMinute = 120
	requestTimeout    = 10 * time.Second
	maxRetries        = 3
)

// ErrNoPrediction is returned when the predictor has no prediction for the matchup
var ErrNoPrediction = errors.New("no prediction for matchup")

// PredictorClient fetches prediction payloads from the upstream model service
type PredictorClient struct {
	baseURL string
	apiKey  string
	client  *RateLimitedClient
}

// NewPredictorClient creates a client for the predictor at baseURL. apiKey may be empty.
func NewPredictorClient(baseURL, apiKey string) *PredictorClient {
	return &PredictorClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  NewRateLimitedClient(requestsPerMinute, requestTimeout, maxRetries),
	}
}

// GetPrediction fetches the prediction for away @ home
func (c *PredictorClient) GetPrediction(ctx context.Context, home, away string) (*prediction.Payload, error) {
	q := url.Values{}
	q.Set("home", home)
	q.Set("away", away)
	endpoint := fmt.Sprintf("%s/predict?%s", c.baseURL, q.Encode())

	headers := map[string]string{"Accept": "application/json"}
	if c.apiKey != "" {
		headers["Authorization"] = c.apiKey
	}

	body, err := c.client.Get(ctx, endpoint, headers)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%s @ %s: %w", away, home, ErrNoPrediction)
		}
		return nil, fmt.Errorf("fetching prediction: %w", err)
	}

	p, err := prediction.DecodePayload(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("predictor response: %w", err)
	}
	return p, nil
}
