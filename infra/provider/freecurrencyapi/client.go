// Package freecurrencyapi implements exchange.Exchange against the
// freecurrencyapi.com v1 HTTP API.
package freecurrencyapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/amirasaad/fxconv/pkg/config"
	"github.com/amirasaad/fxconv/pkg/money"
	"github.com/amirasaad/fxconv/pkg/provider/exchange"
)

const (
	providerName = "freecurrencyapi"

	// maxErrorBody caps how much of an unexpected response is quoted in errors.
	maxErrorBody = 512
)

var (
	errMalformedRejection = errors.New("unprocessable entity with unexpected body")
	errNoData             = errors.New("response has no data field")
)

// Client calls the freecurrencyapi.com API. It performs exactly one request
// per call and never retries.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// envelope is the success payload shape shared by every endpoint.
type envelope[T any] struct {
	Data T `json:"data"`
}

// New creates a Client from config. A zero HTTPTimeout means no timeout.
func New(cfg *config.FreeCurrencyAPI, logger *slog.Logger) *Client {
	return NewWithHTTPClient(cfg, &http.Client{Timeout: cfg.HTTPTimeout}, logger)
}

// NewWithHTTPClient creates a Client that sends requests through httpClient.
func NewWithHTTPClient(cfg *config.FreeCurrencyAPI, httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiKey:     cfg.ApiKey,
		baseURL:    strings.TrimRight(cfg.ApiUrl, "/"),
		httpClient: httpClient,
		logger:     logger.With(slog.String("provider", providerName)),
	}
}

// LatestRates fetches the latest rates of base against targets.
func (c *Client) LatestRates(
	ctx context.Context,
	base money.Code,
	targets []money.Code,
) exchange.Result[money.RateMap] {
	params := url.Values{}
	params.Set("base_currency", base.String())
	if len(targets) > 0 {
		params.Set("currencies", money.Join(targets))
	}

	res := get[money.RateMap](ctx, c, "latest", params)
	if res.Kind != exchange.KindSuccess {
		return res
	}
	if err := res.Value.Validate(); err != nil {
		return exchange.Failure[money.RateMap](fmt.Errorf("latest %s: %w", base, err))
	}
	c.logger.Info("Fetched exchange rates", "base", base, "requested", len(targets), "received", len(res.Value))
	return res
}

// Currencies fetches the currency directory. base is optional.
func (c *Client) Currencies(ctx context.Context, base money.Code) exchange.Result[money.Directory] {
	params := url.Values{}
	if base != "" {
		params.Set("base_currency", base.String())
	}

	res := get[money.Directory](ctx, c, "currencies", params)
	if res.Kind != exchange.KindSuccess {
		return res
	}
	if err := res.Value.Validate(); err != nil {
		return exchange.Failure[money.Directory](fmt.Errorf("currencies: %w", err))
	}
	c.logger.Info("Fetched currency directory", "count", len(res.Value))
	return res
}

// Name returns the provider's name
func (c *Client) Name() string {
	return providerName
}

// get issues GET {baseURL}/{endpoint} and classifies the response.
func get[T any](ctx context.Context, c *Client, endpoint string, params url.Values) exchange.Result[T] {
	endpointURL := c.baseURL + "/" + endpoint
	c.logger.Debug("Requesting rate service",
		"url", endpointURL,
		"params", params.Encode(),
		"api_key", config.MaskValue(c.apiKey),
	)

	// apikey is added after logging so the secret never reaches the log.
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL+"?"+query.Encode(), nil)
	if err != nil {
		return exchange.Failure[T](fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Rate service unreachable", "url", endpointURL, "error", redact(err, c.apiKey))
		return exchange.Failure[T](fmt.Errorf("failed to make request: %w", redact(err, c.apiKey)))
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity:
		apiErr, err := decodeRejection(resp.Body)
		if err != nil {
			c.logger.Warn("Rate service rejection could not be parsed", "url", endpointURL, "error", err)
			return exchange.Failure[T](err)
		}
		c.logger.Warn("Rate service rejected request", "url", endpointURL, "message", apiErr.Message)
		return exchange.Rejected[T](apiErr)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("Rate service returned error status", "url", endpointURL, "status", resp.StatusCode)
		return exchange.Failure[T](fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var payload envelope[*T]
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return exchange.Failure[T](fmt.Errorf("failed to decode response: %w", err))
	}
	if payload.Data == nil {
		return exchange.Failure[T](errNoData)
	}
	return exchange.Success(*payload.Data)
}

func decodeRejection(body io.Reader) (*exchange.APIError, error) {
	var apiErr exchange.APIError
	if err := json.NewDecoder(body).Decode(&apiErr); err != nil {
		return nil, fmt.Errorf("%w: %w", errMalformedRejection, err)
	}
	if apiErr.Message == "" && len(apiErr.Errors) == 0 {
		return nil, errMalformedRejection
	}
	return &apiErr, nil
}

// redact strips the API key from transport errors, which quote the request URL.
func redact(err error, apiKey string) error {
	if apiKey == "" || !strings.Contains(err.Error(), apiKey) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), apiKey, config.MaskValue(apiKey)), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

var _ exchange.Exchange = (*Client)(nil)
