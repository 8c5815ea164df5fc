package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/futplanner/internal/domain/league"
	leaguemock "github.com/riskibarqy/futplanner/internal/mocks/domain/league"
)

func TestCatalogService_ResolveSeason(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), "trace_id", "trace-456")
	repo := leaguemock.NewRepository(t)
	svc := NewCatalogService(repo)

	repo.On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), int64(39)).
		Return(league.League{ID: 39, CurrentSeason: 2025}, true, nil).
		Once()
	repo.On("GetByID", mock.Anything, int64(40)).
		Return(league.League{ID: 40}, true, nil).
		Once()
	repo.On("GetByID", mock.Anything, int64(41)).
		Return(league.League{}, false, nil).
		Once()

	season, err := svc.ResolveSeason(ctx, 39)
	if err != nil {
		t.Fatalf("resolve season: %v", err)
	}
	if season != 2025 {
		t.Fatalf("unexpected season: %d", season)
	}

	if _, err := svc.ResolveSeason(context.Background(), 40); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for league without season, got %v", err)
	}
	if _, err := svc.ResolveSeason(context.Background(), 41); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing league, got %v", err)
	}
	if _, err := svc.ResolveSeason(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCatalogService_ListCountries(t *testing.T) {
	t.Parallel()

	repo := leaguemock.NewRepository(t)
	svc := NewCatalogService(repo)

	repo.On("ListWithTeams", mock.Anything).
		Return([]league.League{
			{ID: 39, Name: "Premier League", CountryName: "England"},
			{ID: 140, Name: "La Liga", CountryName: "Spain"},
			{ID: 40, Name: "Championship", CountryName: "England"},
		}, nil).
		Once()

	got, err := svc.ListCountries(context.Background())
	if err != nil {
		t.Fatalf("list countries: %v", err)
	}
	if len(got) != 2 || got[0].Name != "England" || len(got[0].Leagues) != 2 {
		t.Fatalf("unexpected countries: %+v", got)
	}
}

func TestCatalogService_ListLeagues_Error(t *testing.T) {
	t.Parallel()

	repo := leaguemock.NewRepository(t)
	svc := NewCatalogService(repo)
	boom := errors.New("db down")

	repo.On("ListWithTeams", mock.Anything).Return(nil, boom).Once()

	if _, err := svc.ListLeagues(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
