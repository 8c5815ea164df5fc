package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/futplanner/external/apifootball"
	"github.com/riskibarqy/futplanner/external/googlecalendar"
	"github.com/riskibarqy/futplanner/internal/config"
	"github.com/riskibarqy/futplanner/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/futplanner/internal/platform/id"
	"github.com/riskibarqy/futplanner/internal/platform/logging"
	"github.com/riskibarqy/futplanner/internal/platform/resilience"
	"github.com/riskibarqy/futplanner/internal/usecase"
)

// NewHTTPServer wires the planner graph for cfg. The returned cleanup closes
// the storage connections opened along the way.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	res := &resources{logger: logger}
	built := false
	defer func() {
		if !built {
			_ = res.Close()
		}
	}()

	leagueRepo, err := res.leagueRepository(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	credentialRepo, err := res.credentialRepository(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	apiClient := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:      cfg.APIFootball.BaseURL,
		APIKey:       cfg.APIFootball.Key,
		RapidAPIHost: cfg.APIFootball.RapidAPIHost,
		Timeout:      cfg.APIFootball.Timeout,
		MaxRetries:   cfg.APIFootball.MaxRetries,
		Logger:       logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.APIFootball.CircuitEnabled,
			FailureThreshold: cfg.APIFootball.CircuitFailureCount,
			OpenTimeout:      cfg.APIFootball.CircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.APIFootball.CircuitHalfOpenMaxReq,
		},
	})
	fixtureSource, err := res.fixtureSource(ctx, cfg, apiClient)
	if err != nil {
		return nil, nil, err
	}

	oauth := googlecalendar.NewOAuth(googlecalendar.OAuthConfig{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
		Timeout:      cfg.Google.Timeout,
	})
	connector := googlecalendar.NewConnector(googlecalendar.ConnectorConfig{
		Timeout: cfg.Google.Timeout,
		Logger:  logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.Google.CircuitEnabled,
			FailureThreshold: cfg.Google.CircuitFailureCount,
			OpenTimeout:      cfg.Google.CircuitOpenTimeout,
		},
	})

	catalogSvc := usecase.NewCatalogService(leagueRepo)
	credentialSvc := usecase.NewCredentialService(
		credentialRepo,
		oauth,
		idgen.NewTokenGenerator(32),
		usecase.CredentialServiceConfig{
			OwnerUserID: cfg.Calendar.OwnerUserID,
			OwnerName:   cfg.Calendar.OwnerName,
		},
		logger,
	)
	builder := usecase.NewCalendarBuilder(credentialSvc, connector, usecase.CalendarBuilderConfig{
		EventWorkers: cfg.Calendar.EventWorkers,
		EventColorID: cfg.Calendar.EventColorID,
	}, logger)
	fetcher := usecase.NewFixtureFetcher(fixtureSource, cfg.Plan.UpstreamTimeout, logger)
	plannerSvc := usecase.NewPlannerService(catalogSvc, fetcher, builder, usecase.PlannerConfig{
		Timeout:         cfg.Plan.Timeout,
		EmptyPairPolicy: emptyPairPolicy(cfg.Plan.EmptyPairPolicy),
	}, logger)

	handler := httpapi.NewHandler(catalogSvc, plannerSvc, credentialSvc, httpapi.HandlerConfig{
		DefaultTimeZone: cfg.Plan.DefaultTimeZone,
	}, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	logger.Info("app wired",
		"catalog_backend", cfg.CatalogBackend,
		"credential_backend", cfg.CredentialBackend,
		"fixture_cache_backend", cfg.FixtureCacheBackend,
		"cache_enabled", cfg.CacheEnabled,
		"empty_pair_policy", cfg.Plan.EmptyPairPolicy,
	)

	built = true
	return server, res.Close, nil
}

func emptyPairPolicy(v string) usecase.EmptyPairPolicy {
	if v == config.EmptyPairSkip {
		return usecase.EmptyPairSkip
	}
	return usecase.EmptyPairAbort
}
