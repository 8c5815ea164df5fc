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

	"github.com/riskibarqy/futplanner/internal/domain/credential"
	"github.com/riskibarqy/futplanner/internal/usecase"
)

const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"
)

type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Timeout      time.Duration
	HTTPClient   *http.Client

	// AuthURL and TokenURL override the Google endpoints, mostly for tests.
	AuthURL  string
	TokenURL string
}

// OAuth runs the offline authorization code flow for the calendar scope.
type OAuth struct {
	cfg        *oauth2.Config
	httpClient *http.Client
}

var _ usecase.OAuthClient = (*OAuth)(nil)

func NewOAuth(cfg OAuthConfig) *OAuth {
	authURL := strings.TrimSpace(cfg.AuthURL)
	if authURL == "" {
		authURL = googleAuthURL
	}
	tokenURL := strings.TrimSpace(cfg.TokenURL)
	if tokenURL == "" {
		tokenURL = googleTokenURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &OAuth{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{calendar.CalendarScope},
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: httpClient,
	}
}

// AuthCodeURL forces the consent screen so Google always returns a refresh
// token, including for users that granted access before.
func (o *OAuth) AuthCodeURL(state string) string {
	return o.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

func (o *OAuth) Exchange(ctx context.Context, code string) (credential.Token, error) {
	tok, err := o.cfg.Exchange(o.clientContext(ctx), code)
	if err != nil {
		return credential.Token{}, tokenEndpointError("exchange authorization code", err)
	}
	return toCredentialToken(tok), nil
}

func (o *OAuth) Refresh(ctx context.Context, refreshToken string) (credential.Token, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return credential.Token{}, fmt.Errorf("%w: refresh token is empty", usecase.ErrUnauthorized)
	}

	src := o.cfg.TokenSource(o.clientContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return credential.Token{}, tokenEndpointError("refresh access token", err)
	}
	return toCredentialToken(tok), nil
}

// tokenEndpointError treats a 4xx answer from the token endpoint as a rejected
// grant. 5xx answers and transport failures mean the endpoint is unavailable.
func tokenEndpointError(op string, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil && retrieveErr.Response.StatusCode < http.StatusInternalServerError {
		return fmt.Errorf("%w: %s: %v", usecase.ErrUnauthorized, op, err)
	}
	return fmt.Errorf("%w: %s: %v", usecase.ErrDependencyUnavailable, op, err)
}

func (o *OAuth) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, o.httpClient)
}

func toCredentialToken(tok *oauth2.Token) credential.Token {
	if tok == nil {
		return credential.Token{}
	}
	return credential.Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}
}
