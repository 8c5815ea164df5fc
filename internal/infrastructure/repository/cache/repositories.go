package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/futplanner/internal/domain/league"
	basecache "github.com/riskibarqy/futplanner/internal/platform/cache"
)

const leagueListKey = "league:list"

// LeagueRepository is a read-through cache in front of a catalog backend.
type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

var _ league.Repository = (*LeagueRepository)(nil)

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) ListWithTeams(ctx context.Context) ([]league.League, error) {
	v, err := r.cache.GetOrLoad(ctx, leagueListKey, func(ctx context.Context) (any, error) {
		items, err := r.next.ListWithTeams(ctx)
		if err != nil {
			return nil, err
		}
		return cloneLeagues(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return cloneLeagues(items), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID int64) (league.League, bool, error) {
	key := "league:id:" + strconv.FormatInt(leagueID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	out := cached.value
	out.Teams = append([]league.Team(nil), out.Teams...)
	return out, cached.exists, nil
}

// cachedLeagueByID also remembers misses so unknown ids do not hit the
// backend on every plan request.
type cachedLeagueByID struct {
	value  league.League
	exists bool
}

func cloneLeagues(items []league.League) []league.League {
	out := make([]league.League, 0, len(items))
	for _, item := range items {
		item.Teams = append([]league.Team(nil), item.Teams...)
		out = append(out, item)
	}
	return out
}
