package league

import (
	"fmt"
	"sort"
	"strings"
)

// League is one entry of the football catalog the planner reads from.
type League struct {
	ID            int64
	Name          string
	CurrentSeason int
	Logo          string
	CountryName   string
	CountryFlag   string
	Teams         []Team
}

// Team is a club that plays in a league.
type Team struct {
	ID   int64
	Name string
	Logo string
}

// Country groups the leagues that share a country name.
type Country struct {
	Name    string
	Flag    string
	Leagues []League
}

func (l League) Validate() error {
	if l.ID < 1 {
		return fmt.Errorf("league id must be >= 1")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}
	if l.CurrentSeason < 0 {
		return fmt.Errorf("league current season must be >= 0")
	}
	for _, t := range l.Teams {
		if t.ID < 1 {
			return fmt.Errorf("league %d has team with invalid id %d", l.ID, t.ID)
		}
	}

	return nil
}

// HasSeason reports whether the catalog entry carries a usable season.
func (l League) HasSeason() bool {
	return l.CurrentSeason > 0
}

func (l League) HasTeams() bool {
	return len(l.Teams) > 0
}

// GroupByCountry buckets leagues by country name. Countries come out sorted
// by name and each keeps its leagues in input order. Leagues without a
// country name are grouped under "World".
func GroupByCountry(items []League) []Country {
	index := make(map[string]int, len(items))
	out := make([]Country, 0)
	for _, item := range items {
		name := strings.TrimSpace(item.CountryName)
		if name == "" {
			name = "World"
		}
		pos, ok := index[name]
		if !ok {
			pos = len(out)
			index[name] = pos
			out = append(out, Country{Name: name, Flag: item.CountryFlag})
		}
		if out[pos].Flag == "" {
			out[pos].Flag = item.CountryFlag
		}
		out[pos].Leagues = append(out[pos].Leagues, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
