package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/futplanner/internal/domain/league"
)

type LeagueRepository struct {
	mu     sync.RWMutex
	items  map[int64]league.League
	orders []int64
}

var _ league.Repository = (*LeagueRepository)(nil)

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	items := make(map[int64]league.League, len(leagues))
	orders := make([]int64, 0, len(leagues))

	for _, l := range leagues {
		if _, exists := items[l.ID]; !exists {
			orders = append(orders, l.ID)
		}
		items[l.ID] = cloneLeague(l)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i] < orders[j] })

	return &LeagueRepository{
		items:  items,
		orders: orders,
	}
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID int64) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[leagueID]
	if !ok {
		return league.League{}, false, nil
	}

	return cloneLeague(l), true, nil
}

func (r *LeagueRepository) ListWithTeams(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.orders))
	for _, id := range r.orders {
		if item := r.items[id]; item.HasTeams() {
			out = append(out, cloneLeague(item))
		}
	}

	return out, nil
}

// Upsert replaces or adds a league. Used by seeding and tests.
func (r *LeagueRepository) Upsert(_ context.Context, l league.League) error {
	if err := l.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[l.ID]; !exists {
		r.orders = append(r.orders, l.ID)
		sort.Slice(r.orders, func(i, j int) bool { return r.orders[i] < r.orders[j] })
	}
	r.items[l.ID] = cloneLeague(l)
	return nil
}

func cloneLeague(l league.League) league.League {
	l.Teams = append([]league.Team(nil), l.Teams...)
	return l
}
