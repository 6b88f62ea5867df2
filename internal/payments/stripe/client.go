package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	APIURL    string
	SecretKey string
}

// Client talks to the payment provider's REST API. It keeps no local state;
// provider failures propagate to the caller untouched.
type Client struct {
	client *http.Client
	config Config
}

func NewClient(cfg Config) *Client {
	return &Client{
		client: &http.Client{
			Transport: &AuthTransport{
				SecretKey: cfg.SecretKey,
				Base:      http.DefaultTransport,
			},
			Timeout: 10 * time.Second,
		},
		config: cfg,
	}
}

// AuthTransport adds the Bearer secret key to every request
type AuthTransport struct {
	SecretKey string
	Base      http.RoundTripper
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+t.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return t.Base.RoundTrip(req)
}

// MinorUnits converts a decimal price into the provider's integer minor
// units. Rounds to the nearest unit; truncation would undercharge prices
// whose cent value is not exactly representable in floating point.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateIntent requests a card-payable intent for the given decimal price
// and returns the intent's client secret.
func (c *Client) CreateIntent(ctx context.Context, price float64) (string, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(MinorUnits(price), 10))
	form.Set("currency", "usd")
	form.Add("payment_method_types[]", "card")

	endpoint := c.config.APIURL + "/payment_intents"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build intent request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("payment provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr != nil || apiErr.Error.Message == "" {
			return "", &ProviderError{
				StatusCode: resp.StatusCode,
				Message:    "payment provider rejected the request",
			}
		}
		return "", &ProviderError{
			StatusCode: resp.StatusCode,
			Type:       apiErr.Error.Type,
			Message:    apiErr.Error.Message,
		}
	}

	var intent intentResponse
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return "", fmt.Errorf("failed to decode intent response: %w", err)
	}

	return intent.ClientSecret, nil
}
