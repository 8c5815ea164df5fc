package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/futplanner/internal/domain/credential"
	"github.com/riskibarqy/futplanner/internal/domain/league"
)

func TestLeagueRepository_SeedAndLookup(t *testing.T) {
	t.Parallel()

	repo := NewLeagueRepository(SeedLeagues())
	ctx := context.Background()

	items, err := repo.ListWithTeams(ctx)
	if err != nil {
		t.Fatalf("list leagues: %v", err)
	}
	withTeams := 0
	for _, l := range SeedLeagues() {
		if len(l.Teams) > 0 {
			withTeams++
		}
	}
	if len(items) != withTeams {
		t.Fatalf("unexpected league count: %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].ID >= items[i].ID {
			t.Fatalf("leagues must be ordered by id: %d before %d", items[i-1].ID, items[i].ID)
		}
	}

	got, ok, err := repo.GetByID(ctx, LeagueIDPremierLeague)
	if err != nil || !ok {
		t.Fatalf("get premier league: ok=%v err=%v", ok, err)
	}
	if got.CurrentSeason != 2026 || len(got.Teams) == 0 {
		t.Fatalf("unexpected league: %+v", got)
	}

	got.Teams[0].Name = "mutated"
	again, _, _ := repo.GetByID(ctx, LeagueIDPremierLeague)
	if again.Teams[0].Name == "mutated" {
		t.Fatalf("repository must return copies")
	}

	if _, ok, err := repo.GetByID(ctx, 999999); err != nil || ok {
		t.Fatalf("expected missing league, ok=%v err=%v", ok, err)
	}
}

func TestLeagueRepository_Upsert(t *testing.T) {
	t.Parallel()

	repo := NewLeagueRepository(nil)
	ctx := context.Background()

	if err := repo.Upsert(ctx, league.League{ID: 0, Name: "broken"}); err == nil {
		t.Fatalf("expected validation error")
	}
	if err := repo.Upsert(ctx, league.League{ID: 61, Name: "Ligue 1", CurrentSeason: 2026}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Upsert(ctx, league.League{ID: 61, Name: "Ligue 1", CurrentSeason: 2027, Teams: []league.Team{{ID: 85, Name: "Paris Saint Germain"}}}); err != nil {
		t.Fatalf("upsert replace: %v", err)
	}

	items, _ := repo.ListWithTeams(ctx)
	if len(items) != 1 || items[0].CurrentSeason != 2027 {
		t.Fatalf("unexpected items after upsert: %+v", items)
	}
}

func TestLeagueRepository_ListWithTeams_SkipsTeamlessLeagues(t *testing.T) {
	t.Parallel()

	repo := NewLeagueRepository([]league.League{
		{ID: 39, Name: "Premier League", CurrentSeason: 2026, CountryName: "England", Teams: []league.Team{{ID: 42, Name: "Arsenal"}}},
		{ID: 999, Name: "Empty League", CurrentSeason: 2026, CountryName: "Nowhere"},
	})
	ctx := context.Background()

	items, err := repo.ListWithTeams(ctx)
	if err != nil {
		t.Fatalf("list leagues: %v", err)
	}
	if len(items) != 1 || items[0].ID != 39 {
		t.Fatalf("expected only the league with teams, got %+v", items)
	}
	for _, country := range league.GroupByCountry(items) {
		if country.Name == "Nowhere" {
			t.Fatalf("country with only teamless leagues must not be listed")
		}
	}

	if _, ok, err := repo.GetByID(ctx, 999); err != nil || !ok {
		t.Fatalf("teamless league must stay resolvable by id, ok=%v err=%v", ok, err)
	}
}

func TestCredentialRepository_UpsertAndGet(t *testing.T) {
	t.Parallel()

	repo := NewCredentialRepository()
	ctx := context.Background()

	if _, ok, err := repo.Get(ctx, 1); err != nil || ok {
		t.Fatalf("expected no credential, ok=%v err=%v", ok, err)
	}
	if err := repo.Upsert(ctx, credential.Credential{UserID: 1}); err == nil {
		t.Fatalf("expected validation error for empty refresh token")
	}
	if err := repo.Upsert(ctx, credential.Credential{UserID: 1, Name: "root", RefreshToken: "r1"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Upsert(ctx, credential.Credential{UserID: 1, Name: "root", RefreshToken: "r2"}); err != nil {
		t.Fatalf("upsert rotate: %v", err)
	}

	got, ok, err := repo.Get(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.RefreshToken != "r2" || got.UpdatedAt.IsZero() {
		t.Fatalf("unexpected credential: %+v", got)
	}
}
