package planner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// AllTeams is the team id that selects every team of a league.
const AllTeams int64 = 0

var (
	ErrInvalidPair          = errors.New("invalid selection pair")
	ErrMalformedPair        = fmt.Errorf("%w: malformed", ErrInvalidPair)
	ErrOutOfRange           = fmt.Errorf("%w: out of range", ErrInvalidPair)
	ErrDuplicatePair        = fmt.Errorf("%w: already processed", ErrInvalidPair)
	ErrSupersededByAllTeams = fmt.Errorf("%w: league selected with all teams", ErrInvalidPair)
	ErrLeagueAlreadyFetched = fmt.Errorf("%w: league already fetched for all teams", ErrInvalidPair)
)

// Pair is one (league, team) selection.
type Pair struct {
	LeagueID  int64
	TeamID    int64
	malformed bool
}

func NewPair(leagueID, teamID int64) Pair {
	return Pair{LeagueID: leagueID, TeamID: teamID}
}

func (p Pair) AllTeams() bool {
	return p.TeamID == AllTeams
}

func (p Pair) Malformed() bool {
	return p.malformed
}

func (p Pair) String() string {
	if p.malformed {
		return "(malformed)"
	}
	return "(" + strconv.FormatInt(p.LeagueID, 10) + ", " + strconv.FormatInt(p.TeamID, 10) + ")"
}

// ParseEntries reads entries two at a time as (league, team). A value that is
// not a base-10 integer, or a trailing league without a team, yields a
// malformed pair so the caller can reject it instead of guessing.
func ParseEntries(entries []string) []Pair {
	out := make([]Pair, 0, (len(entries)+1)/2)
	for i := 0; i < len(entries); i += 2 {
		leagueID, leagueErr := parseID(entries[i])
		if i+1 >= len(entries) {
			out = append(out, Pair{LeagueID: leagueID, malformed: true})
			break
		}
		teamID, teamErr := parseID(entries[i+1])
		out = append(out, Pair{
			LeagueID:  leagueID,
			TeamID:    teamID,
			malformed: leagueErr != nil || teamErr != nil,
		})
	}
	return out
}

// SplitEntries flattens raw query values. Each value may itself be a comma
// separated list. Blank values are dropped, but an empty slot inside a list
// is kept as "" so it spoils only its own pair instead of shifting the rest.
func SplitEntries(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		for _, part := range strings.Split(value, ",") {
			out = append(out, strings.TrimSpace(part))
		}
	}
	return out
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}
