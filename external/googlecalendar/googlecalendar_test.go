package googlecalendar

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	domaincalendar "github.com/riskibarqy/futplanner/internal/domain/calendar"
	"github.com/riskibarqy/futplanner/internal/domain/credential"
	"github.com/riskibarqy/futplanner/internal/platform/resilience"
	"github.com/riskibarqy/futplanner/internal/usecase"
)

func TestOAuth_AuthCodeURL(t *testing.T) {
	t.Parallel()

	o := NewOAuth(OAuthConfig{
		ClientID:    "client-1",
		RedirectURL: "http://localhost:8080/v1/auth/callback",
	})

	raw := o.AuthCodeURL("state-1")
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse auth url: %v", err)
	}
	if !strings.HasPrefix(raw, googleAuthURL) {
		t.Fatalf("unexpected auth endpoint: %s", raw)
	}

	q := u.Query()
	if q.Get("state") != "state-1" || q.Get("client_id") != "client-1" {
		t.Fatalf("unexpected query: %s", u.RawQuery)
	}
	if q.Get("access_type") != "offline" || q.Get("prompt") != "consent" {
		t.Fatalf("expected offline access with forced consent, got %s", u.RawQuery)
	}
	if q.Get("scope") != "https://www.googleapis.com/auth/calendar" {
		t.Fatalf("unexpected scope: %q", q.Get("scope"))
	}
}

func TestOAuth_ExchangeAndRefresh(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.Form.Get("grant_type") {
		case "authorization_code":
			if r.Form.Get("code") != "code-1" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
				return
			}
			_, _ = w.Write([]byte(`{"access_token":"access-1","refresh_token":"refresh-1","token_type":"Bearer","expires_in":3600}`))
		case "refresh_token":
			if r.Form.Get("refresh_token") != "refresh-1" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
				return
			}
			_, _ = w.Write([]byte(`{"access_token":"access-2","token_type":"Bearer","expires_in":3600}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	o := NewOAuth(OAuthConfig{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		TokenURL:     srv.URL,
		HTTPClient:   srv.Client(),
	})
	ctx := context.Background()

	tok, err := o.Exchange(ctx, "code-1")
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if tok.AccessToken != "access-1" || tok.RefreshToken != "refresh-1" {
		t.Fatalf("unexpected token: %+v", tok)
	}
	if !tok.Expiry.After(time.Now()) {
		t.Fatalf("expected expiry in the future, got %s", tok.Expiry)
	}

	if _, err := o.Exchange(ctx, "bad"); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	tok, err = o.Refresh(ctx, "refresh-1")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if tok.AccessToken != "access-2" {
		t.Fatalf("unexpected refreshed token: %+v", tok)
	}

	if _, err := o.Refresh(ctx, "revoked"); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for revoked token, got %v", err)
	}
	if _, err := o.Refresh(ctx, ""); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
}

func TestOAuth_TokenEndpointOutage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"backend_error"}`))
	}))
	defer srv.Close()

	o := NewOAuth(OAuthConfig{ClientID: "client-1", TokenURL: srv.URL, HTTPClient: srv.Client()})
	ctx := context.Background()

	_, err := o.Exchange(ctx, "code-1")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) || errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected exchange outage to be ErrDependencyUnavailable, got %v", err)
	}
	_, err = o.Refresh(ctx, "refresh-1")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) || errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected refresh outage to be ErrDependencyUnavailable, got %v", err)
	}
}

type recordedRequest struct {
	method string
	path   string
	auth   string
	body   map[string]any
}

func newCalendarServer(t *testing.T, status func(method, path string) int) (*httptest.Server, func() []recordedRequest) {
	t.Helper()

	var (
		mu   sync.Mutex
		reqs []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		rec := recordedRequest{method: r.Method, path: r.URL.Path, auth: r.Header.Get("Authorization")}
		if len(raw) > 0 {
			_ = sonic.Unmarshal(raw, &rec.body)
		}
		mu.Lock()
		reqs = append(reqs, rec)
		mu.Unlock()

		if code := status(r.Method, r.URL.Path); code != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(code)
			_, _ = w.Write([]byte(`{"error":{"code":` + strconv.Itoa(code) + `,"message":"rejected"}}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case strings.HasSuffix(r.URL.Path, "/acl"):
			_, _ = w.Write([]byte(`{"id":"default","role":"reader","scope":{"type":"default"}}`))
		case strings.HasSuffix(r.URL.Path, "/events"):
			_, _ = w.Write([]byte(`{"id":"event-1"}`))
		case strings.HasSuffix(r.URL.Path, "/calendars"):
			_, _ = w.Write([]byte(`{"id":"cal-1@group.calendar.google.com","summary":"Arsenal"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), reqs...)
	}
}

func TestProvider_CalendarLifecycle(t *testing.T) {
	t.Parallel()

	srv, requests := newCalendarServer(t, func(string, string) int { return 0 })
	defer srv.Close()

	connector := NewConnector(ConnectorConfig{Endpoint: srv.URL + "/", Base: srv.Client().Transport})
	provider, err := connector.Connect(context.Background(), credential.Token{AccessToken: "access-1"})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	ctx := context.Background()

	id, err := provider.CreateCalendar(ctx, "Arsenal", "Upcoming football fixtures", "Europe/London")
	if err != nil {
		t.Fatalf("create calendar: %v", err)
	}
	if id != "cal-1@group.calendar.google.com" {
		t.Fatalf("unexpected calendar id: %s", id)
	}
	if err := provider.MakePublic(ctx, id); err != nil {
		t.Fatalf("make public: %v", err)
	}

	start := time.Date(2026, 11, 1, 15, 0, 0, 0, time.UTC)
	if err := provider.InsertEvent(ctx, id, domaincalendar.Event{
		Summary:  "Arsenal vs Chelsea | Premier League",
		Location: "Emirates Stadium, London",
		ColorID:  "1",
		Start:    start,
		End:      start.Add(domaincalendar.EventDuration),
	}); err != nil {
		t.Fatalf("insert event: %v", err)
	}
	if err := provider.DeleteCalendar(ctx, id); err != nil {
		t.Fatalf("delete calendar: %v", err)
	}

	got := requests()
	if len(got) != 4 {
		t.Fatalf("expected 4 requests, got=%d", len(got))
	}
	for _, req := range got {
		if req.auth != "Bearer access-1" {
			t.Fatalf("expected bearer token on %s %s, got %q", req.method, req.path, req.auth)
		}
	}

	if got[0].body["summary"] != "Arsenal" || got[0].body["timeZone"] != "Europe/London" {
		t.Fatalf("unexpected create body: %v", got[0].body)
	}
	scope, _ := got[1].body["scope"].(map[string]any)
	if got[1].body["role"] != "reader" || scope["type"] != "default" {
		t.Fatalf("unexpected acl body: %v", got[1].body)
	}
	startBody, _ := got[2].body["start"].(map[string]any)
	if startBody["dateTime"] != "2026-11-01T15:00:00Z" || got[2].body["colorId"] != "1" {
		t.Fatalf("unexpected event body: %v", got[2].body)
	}
	if got[3].method != http.MethodDelete {
		t.Fatalf("expected delete, got %s", got[3].method)
	}
}

func TestProvider_MapsAPIErrors(t *testing.T) {
	t.Parallel()

	srv, _ := newCalendarServer(t, func(method, path string) int {
		switch {
		case strings.HasSuffix(path, "/acl"):
			return http.StatusUnauthorized
		case strings.HasSuffix(path, "/events"):
			return http.StatusServiceUnavailable
		case strings.HasSuffix(path, "/calendars"):
			return http.StatusForbidden
		}
		return 0
	})
	defer srv.Close()

	connector := NewConnector(ConnectorConfig{Endpoint: srv.URL + "/", Base: srv.Client().Transport})
	provider, err := connector.Connect(context.Background(), credential.Token{AccessToken: "a"})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	ctx := context.Background()

	_, err = provider.CreateCalendar(ctx, "x", "", "UTC")
	if err == nil || errors.Is(err, usecase.ErrUnauthorized) || errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected plain error for 403, got %v", err)
	}
	if err := provider.MakePublic(ctx, "cal"); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := provider.InsertEvent(ctx, "cal", domaincalendar.Event{Start: time.Now(), End: time.Now()}); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestConnector_RejectsEmptyToken(t *testing.T) {
	t.Parallel()

	if _, err := NewConnector(ConnectorConfig{}).Connect(context.Background(), credential.Token{}); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestProvider_CircuitBreakerSharedAcrossSessions(t *testing.T) {
	t.Parallel()

	srv, requests := newCalendarServer(t, func(method, path string) int {
		if strings.HasSuffix(path, "/events") {
			return http.StatusInternalServerError
		}
		if strings.HasSuffix(path, "/acl") {
			return http.StatusNotFound
		}
		return 0
	})
	defer srv.Close()

	connector := NewConnector(ConnectorConfig{
		Endpoint: srv.URL + "/",
		Base:     srv.Client().Transport,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
		},
	})
	ctx := context.Background()
	ev := domaincalendar.Event{Start: time.Now(), End: time.Now().Add(time.Hour)}

	first, err := connector.Connect(ctx, credential.Token{AccessToken: "a"})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := first.MakePublic(ctx, "cal"); err == nil {
			t.Fatalf("expected 404 from acl")
		}
	}
	for i := 0; i < 2; i++ {
		if err := first.InsertEvent(ctx, "cal", ev); !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
		}
	}

	second, err := connector.Connect(ctx, credential.Token{AccessToken: "b"})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	before := len(requests())
	if _, err := second.CreateCalendar(ctx, "x", "", "UTC"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected open breaker to reject, got %v", err)
	}
	if after := len(requests()); after != before {
		t.Fatalf("expected no request while the breaker is open, got %d new", after-before)
	}
}
