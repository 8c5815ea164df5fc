package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/futplanner/internal/domain/calendar"
	"github.com/riskibarqy/futplanner/internal/domain/fixture"
	"github.com/riskibarqy/futplanner/internal/domain/planner"
	"github.com/riskibarqy/futplanner/internal/platform/logging"
)

type EmptyPairPolicy string

const (
	// EmptyPairAbort fails the whole plan when a valid pair has no fixtures.
	EmptyPairAbort EmptyPairPolicy = "abort"
	// EmptyPairSkip logs the pair and moves on.
	EmptyPairSkip EmptyPairPolicy = "skip"
)

type SeasonResolver interface {
	ResolveSeason(ctx context.Context, leagueID int64) (int, error)
}

type CalendarCreator interface {
	Build(ctx context.Context, name, timeZone string, fixtures []fixture.Fixture) (calendar.Calendar, error)
}

type PlannerConfig struct {
	Timeout         time.Duration
	EmptyPairPolicy EmptyPairPolicy
}

type PlanInput struct {
	Name     string
	TimeZone string
	Entries  []string
}

type PlanResult struct {
	CalendarName      string            `json:"calendar_name"`
	PublicCalendarURL string            `json:"public_calendar_url"`
	EmbedCalendarURL  string            `json:"embed_calendar_url"`
	Fixtures          []fixture.Fixture `json:"fixtures"`
}

type PlannerService struct {
	seasons  SeasonResolver
	fetcher  *FixtureFetcher
	calendar CalendarCreator
	cfg      PlannerConfig
	logger   *logging.Logger
	now      func() time.Time
}

func NewPlannerService(
	seasons SeasonResolver,
	fetcher *FixtureFetcher,
	calendarCreator CalendarCreator,
	cfg PlannerConfig,
	logger *logging.Logger,
) *PlannerService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.EmptyPairPolicy == "" {
		cfg.EmptyPairPolicy = EmptyPairAbort
	}
	return &PlannerService{
		seasons:  seasons,
		fetcher:  fetcher,
		calendar: calendarCreator,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Plan turns a flat list of (league, team) entries into a public calendar of
// upcoming fixtures. Pairs are handled strictly in input order.
func (s *PlannerService) Plan(ctx context.Context, input PlanInput) (PlanResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlannerService.Plan", attribute.Int("plan.entries", len(input.Entries)))
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return PlanResult{}, fmt.Errorf("%w: calendar name is required", ErrInvalidInput)
	}
	timeZone := strings.TrimSpace(input.TimeZone)
	if _, err := time.LoadLocation(timeZone); timeZone == "" || err != nil {
		return PlanResult{}, fmt.Errorf("%w: invalid time zone %q", ErrInvalidInput, input.TimeZone)
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	pairs := planner.ParseEntries(input.Entries)
	acc := planner.NewAccumulator()
	acc.MarkAllTeams(pairs)

	fixtures := make([]fixture.Fixture, 0)
	validPairs := 0
	for _, pair := range pairs {
		if err := acc.Check(pair); err != nil {
			s.logger.InfoContext(ctx, "selection skipped", "pair", pair.String(), "reason", err.Error())
			continue
		}
		validPairs++

		season, err := s.seasons.ResolveSeason(ctx, pair.LeagueID)
		if err != nil {
			return PlanResult{}, fmt.Errorf("resolve season league=%d: %w", pair.LeagueID, err)
		}

		res, err := s.fetcher.Fetch(ctx, acc, pair, season)
		if err != nil {
			return PlanResult{}, err
		}
		if res.Outcome == FetchEmpty {
			if s.cfg.EmptyPairPolicy == EmptyPairSkip {
				s.logger.WarnContext(ctx, "selection has no fixtures", "pair", pair.String(), "season", season)
				continue
			}
			return PlanResult{}, fmt.Errorf("%w: no fixtures for %s season=%d", ErrEmptyResult, pair, season)
		}

		fixtures = append(fixtures, fixture.RemovePassed(res.Fixtures, s.now())...)
	}

	if validPairs == 0 {
		return PlanResult{}, fmt.Errorf("%w: no valid league/team selections", ErrInvalidInput)
	}

	cal, err := s.calendar.Build(ctx, name, timeZone, fixtures)
	if err != nil {
		return PlanResult{}, fmt.Errorf("build calendar: %w", err)
	}

	s.logger.InfoContext(ctx, "plan completed",
		"calendar_id", cal.ID,
		"pairs", validPairs,
		"fixtures", len(fixtures),
	)

	return PlanResult{
		CalendarName:      name,
		PublicCalendarURL: cal.PublicURL(),
		EmbedCalendarURL:  cal.EmbedHTML(),
		Fixtures:          fixtures,
	}, nil
}
