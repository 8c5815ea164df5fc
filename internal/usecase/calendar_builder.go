package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/futplanner/internal/domain/calendar"
	"github.com/riskibarqy/futplanner/internal/domain/credential"
	"github.com/riskibarqy/futplanner/internal/domain/fixture"
	"github.com/riskibarqy/futplanner/internal/platform/logging"
)

const (
	calendarDescription = "Upcoming football fixtures"
	cleanupTimeout      = 10 * time.Second
)

type AccessTokenSource interface {
	AccessToken(ctx context.Context) (credential.Token, error)
}

// CalendarConnector opens a provider session authorized by tok.
type CalendarConnector interface {
	Connect(ctx context.Context, tok credential.Token) (calendar.Provider, error)
}

type CalendarBuilderConfig struct {
	EventWorkers int
	EventColorID string
}

type CalendarBuilder struct {
	tokens    AccessTokenSource
	connector CalendarConnector
	cfg       CalendarBuilderConfig
	logger    *logging.Logger
}

func NewCalendarBuilder(tokens AccessTokenSource, connector CalendarConnector, cfg CalendarBuilderConfig, logger *logging.Logger) *CalendarBuilder {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.EventWorkers < 1 {
		cfg.EventWorkers = 1
	}
	if cfg.EventColorID == "" {
		cfg.EventColorID = calendar.DefaultColorID
	}
	return &CalendarBuilder{
		tokens:    tokens,
		connector: connector,
		cfg:       cfg,
		logger:    logger,
	}
}

// Build creates a public calendar named name and inserts one event per
// fixture. If anything fails after the calendar exists, the calendar is
// deleted before the error is returned.
func (b *CalendarBuilder) Build(ctx context.Context, name, timeZone string, fixtures []fixture.Fixture) (calendar.Calendar, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CalendarBuilder.Build")
	defer span.End()

	tok, err := b.tokens.AccessToken(ctx)
	if err != nil {
		return calendar.Calendar{}, fmt.Errorf("get access token: %w", err)
	}
	provider, err := b.connector.Connect(ctx, tok)
	if err != nil {
		return calendar.Calendar{}, fmt.Errorf("%w: connect calendar provider: %v", ErrUpstream, err)
	}

	calendarID, err := provider.CreateCalendar(ctx, name, calendarDescription, timeZone)
	if err != nil {
		return calendar.Calendar{}, fmt.Errorf("%w: create calendar: %w", ErrUpstream, err)
	}
	out := calendar.Calendar{ID: calendarID, Name: name, TimeZone: timeZone}

	if err := provider.MakePublic(ctx, calendarID); err != nil {
		b.cleanup(ctx, provider, calendarID)
		return calendar.Calendar{}, fmt.Errorf("%w: share calendar: %w", ErrUpstream, err)
	}

	if err := b.insertEvents(ctx, provider, calendarID, fixtures); err != nil {
		b.cleanup(ctx, provider, calendarID)
		return calendar.Calendar{}, err
	}

	b.logger.InfoContext(ctx, "calendar built",
		"calendar_id", calendarID,
		"events", len(fixtures),
		"time_zone", timeZone,
	)
	return out, nil
}

func (b *CalendarBuilder) insertEvents(ctx context.Context, provider calendar.Provider, calendarID string, fixtures []fixture.Fixture) error {
	if len(fixtures) == 0 {
		return nil
	}

	if b.cfg.EventWorkers == 1 {
		for _, item := range fixtures {
			if err := provider.InsertEvent(ctx, calendarID, calendar.EventFromFixture(item, b.cfg.EventColorID)); err != nil {
				return fmt.Errorf("%w: insert event fixture=%d: %w", ErrUpstream, item.Fixture.ID, err)
			}
		}
		return nil
	}

	workerCount := b.cfg.EventWorkers
	if workerCount > len(fixtures) {
		workerCount = len(fixtures)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return fmt.Errorf("create event worker pool: %w", err)
	}
	defer pool.Release()

	insertCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		workers  sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		errMu.Unlock()
	}

	for _, item := range fixtures {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if insertCtx.Err() != nil {
				return
			}
			ev := calendar.EventFromFixture(item, b.cfg.EventColorID)
			if err := provider.InsertEvent(insertCtx, calendarID, ev); err != nil {
				fail(fmt.Errorf("%w: insert event fixture=%d: %w", ErrUpstream, item.Fixture.ID, err))
			}
		}); err != nil {
			workers.Done()
			fail(fmt.Errorf("submit event to worker pool: %w", err))
			break
		}
	}
	workers.Wait()

	return firstErr
}

func (b *CalendarBuilder) cleanup(ctx context.Context, provider calendar.Provider, calendarID string) {
	// The request context may already be cancelled; cleanup gets its own budget.
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := provider.DeleteCalendar(cleanupCtx, calendarID); err != nil {
		b.logger.WarnContext(ctx, "delete partial calendar failed", "calendar_id", calendarID, "error", err)
		return
	}
	b.logger.InfoContext(ctx, "partial calendar deleted", "calendar_id", calendarID)
}
