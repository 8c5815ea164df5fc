package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/futplanner/internal/domain/fixture"
	"github.com/riskibarqy/futplanner/internal/domain/planner"
	"github.com/riskibarqy/futplanner/internal/platform/logging"
	"github.com/riskibarqy/futplanner/internal/platform/resilience"
)

type FetchOutcome int

const (
	FetchFound FetchOutcome = iota + 1
	FetchEmpty
)

func (o FetchOutcome) String() string {
	switch o {
	case FetchFound:
		return "found"
	case FetchEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// FetchResult keeps "upstream returned nothing" apart from "upstream failed",
// which comes back as an error instead.
type FetchResult struct {
	Fixtures []fixture.Fixture
	Outcome  FetchOutcome
}

type FixtureFetcher struct {
	source  fixture.Source
	timeout time.Duration
	logger  *logging.Logger
}

func NewFixtureFetcher(source fixture.Source, timeout time.Duration, logger *logging.Logger) *FixtureFetcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureFetcher{
		source:  source,
		timeout: timeout,
		logger:  logger,
	}
}

// Fetch loads the fixtures of one pair for season and records the pair on acc.
// The pair is recorded once the request was issued, even when it fails, so a
// retry inside the same request cannot fetch it twice.
func (f *FixtureFetcher) Fetch(ctx context.Context, acc *planner.Accumulator, pair planner.Pair, season int) (FetchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureFetcher.Fetch",
		attribute.Int64("league.id", pair.LeagueID),
		attribute.Int64("team.id", pair.TeamID),
		attribute.Int("league.season", season),
	)
	defer span.End()

	query := fixture.Query{LeagueID: pair.LeagueID, Season: season, TeamID: pair.TeamID}
	if err := query.Validate(); err != nil {
		return FetchResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	callCtx := ctx
	if f.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	items, err := f.source.Fetch(callCtx, query)
	acc.MarkFetched(pair)
	if err != nil {
		switch {
		case errors.Is(err, ErrDependencyUnavailable), errors.Is(err, ErrInvalidInput):
			return FetchResult{}, fmt.Errorf("fetch fixtures %s: %w", pair, err)
		case errors.Is(err, resilience.ErrCircuitOpen):
			return FetchResult{}, fmt.Errorf("%w: fetch fixtures %s: %v", ErrDependencyUnavailable, pair, err)
		case errors.Is(err, context.DeadlineExceeded):
			return FetchResult{}, fmt.Errorf("%w: fetch fixtures %s timed out: %v", ErrDependencyUnavailable, pair, err)
		}
		return FetchResult{}, fmt.Errorf("%w: fetch fixtures %s: %w", ErrUpstream, pair, err)
	}

	f.logger.DebugContext(ctx, "fixtures fetched",
		"league_id", pair.LeagueID,
		"team_id", pair.TeamID,
		"season", season,
		"count", len(items),
	)

	if len(items) == 0 {
		return FetchResult{Outcome: FetchEmpty}, nil
	}
	return FetchResult{Fixtures: items, Outcome: FetchFound}, nil
}
