package googlecalendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	domaincalendar "github.com/riskibarqy/futplanner/internal/domain/calendar"
	"github.com/riskibarqy/futplanner/internal/domain/credential"
	"github.com/riskibarqy/futplanner/internal/platform/logging"
	"github.com/riskibarqy/futplanner/internal/platform/resilience"
	"github.com/riskibarqy/futplanner/internal/usecase"
)

type ConnectorConfig struct {
	Timeout time.Duration
	// Endpoint overrides the Calendar API base URL, mostly for tests.
	Endpoint string
	// Base is the transport the authorized client wraps.
	Base http.RoundTripper
	// CircuitBreaker is shared by every session the connector opens.
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
}

// Connector opens Calendar API sessions for a given access token.
type Connector struct {
	timeout  time.Duration
	endpoint string
	base     http.RoundTripper
	breaker  *resilience.CircuitBreaker
}

var _ usecase.CalendarConnector = (*Connector)(nil)

func NewConnector(cfg ConnectorConfig) *Connector {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	base := cfg.Base
	if base == nil {
		base = otelhttp.NewTransport(http.DefaultTransport)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	breaker := cfg.CircuitBreaker.Build("google-calendar")
	breaker.OnStateChange(func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "dependency", name, "from", from, "to", to)
	})
	return &Connector{
		timeout:  timeout,
		endpoint: strings.TrimSpace(cfg.Endpoint),
		base:     base,
		breaker:  breaker,
	}
}

func (c *Connector) Connect(ctx context.Context, tok credential.Token) (domaincalendar.Provider, error) {
	if strings.TrimSpace(tok.AccessToken) == "" {
		return nil, fmt.Errorf("%w: access token is empty", usecase.ErrUnauthorized)
	}

	httpClient := &http.Client{
		Timeout: c.timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{
				AccessToken: tok.AccessToken,
				TokenType:   "Bearer",
				Expiry:      tok.Expiry,
			}),
			Base: c.base,
		},
	}

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint))
	}
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return &Provider{svc: svc, breaker: c.breaker}, nil
}

// Provider is one authorized Calendar API session.
type Provider struct {
	svc     *calendar.Service
	breaker *resilience.CircuitBreaker
}

var _ domaincalendar.Provider = (*Provider)(nil)

func (p *Provider) CreateCalendar(ctx context.Context, name, description, timeZone string) (string, error) {
	var created *calendar.Calendar
	err := p.call(func() (err error) {
		created, err = p.svc.Calendars.Insert(&calendar.Calendar{
			Summary:     name,
			Description: description,
			TimeZone:    timeZone,
		}).Context(ctx).Do()
		return err
	})
	if err != nil {
		return "", mapAPIError("create calendar", err)
	}
	if strings.TrimSpace(created.Id) == "" {
		return "", fmt.Errorf("create calendar: empty calendar id in response")
	}
	return created.Id, nil
}

// MakePublic grants read access to everyone, which the public and embed
// links depend on.
func (p *Provider) MakePublic(ctx context.Context, calendarID string) error {
	err := p.call(func() error {
		_, err := p.svc.Acl.Insert(calendarID, &calendar.AclRule{
			Role:  "reader",
			Scope: &calendar.AclRuleScope{Type: "default"},
		}).Context(ctx).Do()
		return err
	})
	if err != nil {
		return mapAPIError("share calendar", err)
	}
	return nil
}

func (p *Provider) InsertEvent(ctx context.Context, calendarID string, event domaincalendar.Event) error {
	err := p.call(func() error {
		_, err := p.svc.Events.Insert(calendarID, &calendar.Event{
			Summary:     event.Summary,
			Description: event.Description,
			Location:    event.Location,
			ColorId:     event.ColorID,
			Start:       &calendar.EventDateTime{DateTime: event.Start.Format(time.RFC3339)},
			End:         &calendar.EventDateTime{DateTime: event.End.Format(time.RFC3339)},
		}).Context(ctx).Do()
		return err
	})
	if err != nil {
		return mapAPIError("insert event", err)
	}
	return nil
}

func (p *Provider) DeleteCalendar(ctx context.Context, calendarID string) error {
	err := p.call(func() error {
		return p.svc.Calendars.Delete(calendarID).Context(ctx).Do()
	})
	if err != nil {
		return mapAPIError("delete calendar", err)
	}
	return nil
}

func (p *Provider) call(fn func() error) error {
	return p.breaker.Execute(fn, isOutage)
}

// isOutage reports errors that say the API itself is unhealthy. Rejected
// requests (4xx other than 429) do not count against the breaker.
func isOutage(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return true
}

func mapAPIError(op string, err error) error {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("%w: %s: %v", usecase.ErrDependencyUnavailable, op, err)
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusUnauthorized:
			return fmt.Errorf("%w: %s: %v", usecase.ErrUnauthorized, op, apiErr)
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %s: %v", usecase.ErrDependencyUnavailable, op, apiErr)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
