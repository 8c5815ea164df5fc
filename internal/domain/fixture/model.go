package fixture

import (
	"fmt"
	"strconv"
	"time"
)

// Fixture is the projection of one upstream match the planner works with.
type Fixture struct {
	Fixture Info   `json:"fixture"`
	League  League `json:"league"`
	Teams   Teams  `json:"teams"`
}

type Info struct {
	ID        int64  `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Venue     Venue  `json:"venue"`
	Round     string `json:"round"`
}

type Venue struct {
	Name string `json:"name"`
	City string `json:"city"`
}

type League struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Season  int    `json:"season"`
	Country string `json:"country"`
}

type Teams struct {
	Home Side `json:"home"`
	Away Side `json:"away"`
}

type Side struct {
	Name string `json:"name"`
}

// Query scopes an upstream fixture lookup. TeamID 0 means every team in the
// league for that season.
type Query struct {
	LeagueID int64
	Season   int
	TeamID   int64
}

func (q Query) AllTeams() bool {
	return q.TeamID == 0
}

func (q Query) Validate() error {
	if q.LeagueID < 1 {
		return fmt.Errorf("league id must be >= 1")
	}
	if q.Season < 1 {
		return fmt.Errorf("season must be >= 1")
	}
	if q.TeamID < 0 {
		return fmt.Errorf("team id must be >= 0")
	}
	return nil
}

// Key is a stable identifier for the query, used for caching and request
// collapsing.
func (q Query) Key() string {
	return "fixtures:" + strconv.FormatInt(q.LeagueID, 10) + ":" + strconv.Itoa(q.Season) + ":" + strconv.FormatInt(q.TeamID, 10)
}

func (f Fixture) KickoffAt() time.Time {
	return time.Unix(f.Fixture.Timestamp, 0).UTC()
}

// RemovePassed returns the fixtures whose kickoff is strictly after now, in
// their original order. The input slice is not modified.
func RemovePassed(items []Fixture, now time.Time) []Fixture {
	cutoff := now.Unix()
	out := make([]Fixture, 0, len(items))
	for _, item := range items {
		if item.Fixture.Timestamp > cutoff {
			out = append(out, item)
		}
	}
	return out
}
