package planner

// Accumulator carries the dedup state of a single planning request. It is not
// safe for concurrent use; one request owns one accumulator.
type Accumulator struct {
	processedPairs          map[Pair]struct{}
	leaguesWithAll          map[int64]struct{}
	processedLeaguesWithAll map[int64]struct{}
}

func NewAccumulator() *Accumulator {
	return &Accumulator{
		processedPairs:          make(map[Pair]struct{}),
		leaguesWithAll:          make(map[int64]struct{}),
		processedLeaguesWithAll: make(map[int64]struct{}),
	}
}

// MarkAllTeams records every league that some pair selects with team 0.
func (a *Accumulator) MarkAllTeams(pairs []Pair) {
	for _, p := range pairs {
		if p.malformed || !p.AllTeams() || p.LeagueID < 1 {
			continue
		}
		a.leaguesWithAll[p.LeagueID] = struct{}{}
	}
}

// Check reports why a pair must be skipped, or nil when it should be fetched.
// It does not mutate the accumulator.
func (a *Accumulator) Check(p Pair) error {
	if p.malformed {
		return ErrMalformedPair
	}
	if p.LeagueID < 1 || p.TeamID < 0 {
		return ErrOutOfRange
	}
	if _, ok := a.processedPairs[p]; ok {
		return ErrDuplicatePair
	}
	if _, ok := a.leaguesWithAll[p.LeagueID]; ok && !p.AllTeams() {
		return ErrSupersededByAllTeams
	}
	if _, ok := a.processedLeaguesWithAll[p.LeagueID]; ok {
		return ErrLeagueAlreadyFetched
	}
	return nil
}

func (a *Accumulator) IsValid(p Pair) bool {
	return a.Check(p) == nil
}

// MarkFetched records a pair after its fixtures were requested. All-teams
// pairs close the whole league.
func (a *Accumulator) MarkFetched(p Pair) {
	if p.AllTeams() {
		a.processedLeaguesWithAll[p.LeagueID] = struct{}{}
		return
	}
	a.processedPairs[Pair{LeagueID: p.LeagueID, TeamID: p.TeamID}] = struct{}{}
}

func (a *Accumulator) LeagueHasAllTeams(leagueID int64) bool {
	_, ok := a.leaguesWithAll[leagueID]
	return ok
}

func (a *Accumulator) LeagueFetched(leagueID int64) bool {
	_, ok := a.processedLeaguesWithAll[leagueID]
	return ok
}
