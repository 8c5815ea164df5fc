package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/futplanner/internal/domain/league"
)

type CatalogService struct {
	leagueRepo league.Repository
}

func NewCatalogService(leagueRepo league.Repository) *CatalogService {
	return &CatalogService{leagueRepo: leagueRepo}
}

// ResolveSeason returns the current season of a catalog league.
func (s *CatalogService) ResolveSeason(ctx context.Context, leagueID int64) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ResolveSeason")
	defer span.End()

	if leagueID < 1 {
		return 0, fmt.Errorf("%w: league id must be >= 1", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return 0, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}
	if !item.HasSeason() {
		return 0, fmt.Errorf("%w: league=%d has no current season", ErrNotFound, leagueID)
	}

	return item.CurrentSeason, nil
}

func (s *CatalogService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListLeagues")
	defer span.End()

	items, err := s.leagueRepo.ListWithTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	return items, nil
}

func (s *CatalogService) ListCountries(ctx context.Context) ([]league.Country, error) {
	items, err := s.ListLeagues(ctx)
	if err != nil {
		return nil, err
	}
	return league.GroupByCountry(items), nil
}
