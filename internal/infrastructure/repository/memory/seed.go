package memory

import (
	"strconv"

	"github.com/riskibarqy/futplanner/internal/domain/league"
)

const (
	LeagueIDPremierLeague = 39
	LeagueIDLaLiga        = 140
	LeagueIDSerieA        = 135
	LeagueIDBundesliga    = 78
	LeagueIDMLS           = 253
	LeagueIDChampions     = 2
)

func logo(kind string, id int64) string {
	return "https://media.api-sports.io/football/" + kind + "/" + strconv.FormatInt(id, 10) + ".png"
}

func teams(items ...league.Team) []league.Team {
	for i := range items {
		items[i].Logo = logo("teams", items[i].ID)
	}
	return items
}

// SeedLeagues is the catalog used by the memory backend.
func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:            LeagueIDPremierLeague,
			Name:          "Premier League",
			CurrentSeason: 2026,
			Logo:          logo("leagues", LeagueIDPremierLeague),
			CountryName:   "England",
			CountryFlag:   "https://media.api-sports.io/flags/gb.svg",
			Teams: teams(
				league.Team{ID: 33, Name: "Manchester United"},
				league.Team{ID: 40, Name: "Liverpool"},
				league.Team{ID: 42, Name: "Arsenal"},
				league.Team{ID: 47, Name: "Tottenham"},
				league.Team{ID: 49, Name: "Chelsea"},
				league.Team{ID: 50, Name: "Manchester City"},
			),
		},
		{
			ID:            LeagueIDLaLiga,
			Name:          "La Liga",
			CurrentSeason: 2026,
			Logo:          logo("leagues", LeagueIDLaLiga),
			CountryName:   "Spain",
			CountryFlag:   "https://media.api-sports.io/flags/es.svg",
			Teams: teams(
				league.Team{ID: 529, Name: "Barcelona"},
				league.Team{ID: 530, Name: "Atletico Madrid"},
				league.Team{ID: 541, Name: "Real Madrid"},
			),
		},
		{
			ID:            LeagueIDSerieA,
			Name:          "Serie A",
			CurrentSeason: 2026,
			Logo:          logo("leagues", LeagueIDSerieA),
			CountryName:   "Italy",
			CountryFlag:   "https://media.api-sports.io/flags/it.svg",
			Teams: teams(
				league.Team{ID: 489, Name: "AC Milan"},
				league.Team{ID: 496, Name: "Juventus"},
				league.Team{ID: 505, Name: "Inter"},
			),
		},
		{
			ID:            LeagueIDBundesliga,
			Name:          "Bundesliga",
			CurrentSeason: 2026,
			Logo:          logo("leagues", LeagueIDBundesliga),
			CountryName:   "Germany",
			CountryFlag:   "https://media.api-sports.io/flags/de.svg",
			Teams: teams(
				league.Team{ID: 157, Name: "Bayern Munich"},
				league.Team{ID: 165, Name: "Borussia Dortmund"},
			),
		},
		{
			ID:            LeagueIDMLS,
			Name:          "Major League Soccer",
			CurrentSeason: 2026,
			Logo:          logo("leagues", LeagueIDMLS),
			CountryName:   "USA",
			CountryFlag:   "https://media.api-sports.io/flags/us.svg",
			Teams: teams(
				league.Team{ID: 1595, Name: "Seattle Sounders"},
				league.Team{ID: 1617, Name: "Portland Timbers"},
				league.Team{ID: 1616, Name: "Los Angeles Galaxy"},
			),
		},
		{
			ID:            LeagueIDChampions,
			Name:          "UEFA Champions League",
			CurrentSeason: 2026,
			Logo:          logo("leagues", LeagueIDChampions),
			CountryName:   "World",
		},
	}
}
