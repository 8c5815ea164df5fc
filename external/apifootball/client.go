package apifootball

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/futplanner/internal/domain/fixture"
	"github.com/riskibarqy/futplanner/internal/platform/logging"
	"github.com/riskibarqy/futplanner/internal/platform/resilience"
	"github.com/riskibarqy/futplanner/internal/usecase"
)

const (
	defaultBaseURL  = "https://v3.football.api-sports.io"
	maxResponseSize = 8 << 20
)

var errAPIFootballTransient = crerr.New("api-football transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	RapidAPIHost   string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads fixtures from API-Football. Identical concurrent requests are
// collapsed and failures trip a circuit breaker.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	rapidAPIHost string
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       resilience.SingleFlight
}

var _ fixture.Source = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}
	breaker := cfg.CircuitBreaker.Build("api-football")
	breaker.OnStateChange(func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "dependency", name, "from", from, "to", to)
	})

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		rapidAPIHost: strings.TrimSpace(cfg.RapidAPIHost),
		maxRetries:   maxInt(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		logger:       logger,
		breaker:      breaker,
	}
}

// Fetch returns the fixtures for query projected to the planner's fixture
// shape, in the order the provider returned them.
func (c *Client) Fetch(ctx context.Context, query fixture.Query) ([]fixture.Fixture, error) {
	ctx, span := startSpan(ctx, "apifootball.Client.Fetch")
	defer span.End()

	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	params := map[string]string{
		"league": strconv.FormatInt(query.LeagueID, 10),
		"season": strconv.Itoa(query.Season),
	}
	if !query.AllTeams() {
		params["team"] = strconv.FormatInt(query.TeamID, 10)
	}

	var envelope fixturesEnvelope
	if err := c.doJSON(ctx, "/fixtures", params, &envelope); err != nil {
		return nil, fmt.Errorf("fetch fixtures league=%d season=%d team=%d: %w", query.LeagueID, query.Season, query.TeamID, err)
	}
	if msg := providerErrors(envelope.Errors); msg != "" {
		return nil, fmt.Errorf("provider rejected request: %s", sanitizeSensitiveText(msg, c.apiKey))
	}

	out := make([]fixture.Fixture, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		if item.Fixture.ID <= 0 {
			continue
		}
		out = append(out, mapFixture(item))
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.DoDetached(ctx, fullURL, c.callTimeout(), func(callCtx context.Context) (any, error) {
		var raw []byte
		callErr := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(callCtx, fullURL)
			return reqErr
		}, isCircuitFailure)
		return raw, callErr
	})
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "api-football circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: sport data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

// callTimeout bounds one shared request including every retry and backoff.
func (c *Client) callTimeout() time.Duration {
	return time.Duration(c.maxRetries+1) * (c.httpClient.Timeout + c.retryBackoff)
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("x-apisports-key", c.apiKey)
		if c.rapidAPIHost != "" {
			req.Header.Set("x-rapidapi-key", c.apiKey)
			req.Header.Set("x-rapidapi-host", c.rapidAPIHost)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errAPIFootballTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errAPIFootballTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errAPIFootballTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "api-football request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func mapFixture(item fixtureItem) fixture.Fixture {
	return fixture.Fixture{
		Fixture: fixture.Info{
			ID:        item.Fixture.ID,
			Timestamp: item.Fixture.Timestamp,
			Venue: fixture.Venue{
				Name: strings.TrimSpace(item.Fixture.Venue.Name),
				City: strings.TrimSpace(item.Fixture.Venue.City),
			},
			Round: strings.TrimSpace(item.League.Round),
		},
		League: fixture.League{
			ID:      item.League.ID,
			Name:    item.League.Name,
			Season:  item.League.Season,
			Country: item.League.Country,
		},
		Teams: fixture.Teams{
			Home: fixture.Side{Name: item.Teams.Home.Name},
			Away: fixture.Side{Name: item.Teams.Away.Name},
		},
	}
}

// providerErrors flattens the "errors" member, which API-Football sends as
// an empty array on success and as an object keyed by field on failure.
func providerErrors(raw any) string {
	switch v := raw.(type) {
	case map[string]any:
		if len(v) == 0 {
			return ""
		}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s: %v", key, v[key]))
		}
		return strings.Join(parts, "; ")
	case []any:
		if len(v) == 0 {
			return ""
		}
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, "; ")
	case string:
		return strings.TrimSpace(v)
	default:
		return ""
	}
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" || apiKey == "" {
		return value
	}
	return strings.ReplaceAll(value, apiKey, "REDACTED")
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errAPIFootballTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
