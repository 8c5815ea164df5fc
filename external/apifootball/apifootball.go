package apifootball

// fixturesEnvelope is the body of GET /fixtures.
type fixturesEnvelope struct {
	Get        string        `json:"get"`
	Errors     any           `json:"errors"`
	Results    int           `json:"results"`
	Paging     paging        `json:"paging"`
	Response   []fixtureItem `json:"response"`
	Parameters any           `json:"parameters"`
}

type paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type fixtureItem struct {
	Fixture fixtureInfo  `json:"fixture"`
	League  leagueInfo   `json:"league"`
	Teams   fixtureTeams `json:"teams"`
}

type fixtureInfo struct {
	ID        int64        `json:"id"`
	Referee   *string      `json:"referee"`
	Timezone  string       `json:"timezone"`
	Date      string       `json:"date"`
	Timestamp int64        `json:"timestamp"`
	Venue     fixtureVenue `json:"venue"`
	Status    statusInfo   `json:"status"`
}

type fixtureVenue struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

type statusInfo struct {
	Long    string `json:"long"`
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed"`
}

type leagueInfo struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Logo    string `json:"logo"`
	Flag    string `json:"flag"`
	Season  int    `json:"season"`
	Round   string `json:"round"`
}

type fixtureTeams struct {
	Home teamInfo `json:"home"`
	Away teamInfo `json:"away"`
}

type teamInfo struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Logo   string `json:"logo"`
	Winner *bool  `json:"winner"`
}
