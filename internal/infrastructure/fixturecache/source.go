package fixturecache

import (
	"context"
	"time"

	"github.com/riskibarqy/futplanner/internal/domain/fixture"
	"github.com/riskibarqy/futplanner/internal/platform/logging"
	"github.com/riskibarqy/futplanner/internal/platform/resilience"
)

const loadTimeout = 30 * time.Second

// Backend stores fixture lists by query key.
type Backend interface {
	Get(ctx context.Context, key string) ([]fixture.Fixture, bool, error)
	Set(ctx context.Context, key string, items []fixture.Fixture, ttl time.Duration) error
}

// Source serves repeated fixture queries from a Backend. Backend failures
// are logged and the call falls through to the wrapped source.
type Source struct {
	next    fixture.Source
	backend Backend
	ttl     time.Duration
	logger  *logging.Logger
	flight  resilience.SingleFlight
}

var _ fixture.Source = (*Source)(nil)

func NewSource(next fixture.Source, backend Backend, ttl time.Duration, logger *logging.Logger) *Source {
	if logger == nil {
		logger = logging.Default()
	}
	return &Source{
		next:    next,
		backend: backend,
		ttl:     ttl,
		logger:  logger,
	}
}

func (s *Source) Fetch(ctx context.Context, query fixture.Query) ([]fixture.Fixture, error) {
	key := query.Key()

	items, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "fixture cache read failed", "key", key, "error", err)
	} else if ok {
		return cloneFixtures(items), nil
	}

	v, err, _ := s.flight.DoDetached(ctx, key, loadTimeout, func(loadCtx context.Context) (any, error) {
		loaded, err := s.next.Fetch(loadCtx, query)
		if err != nil {
			return nil, err
		}
		if loaded == nil {
			loaded = []fixture.Fixture{}
		}
		if err := s.backend.Set(loadCtx, key, loaded, s.ttl); err != nil {
			s.logger.WarnContext(loadCtx, "fixture cache write failed", "key", key, "error", err)
		}
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	loaded, _ := v.([]fixture.Fixture)
	return cloneFixtures(loaded), nil
}

func cloneFixtures(items []fixture.Fixture) []fixture.Fixture {
	return append(make([]fixture.Fixture, 0, len(items)), items...)
}
