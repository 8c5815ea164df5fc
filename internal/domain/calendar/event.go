package calendar

import (
	"net/url"
	"strconv"
	"time"

	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/futplanner/internal/domain/fixture"
)

// EventDuration is the fixed length given to every match event.
const EventDuration = 7200 * time.Second

const DefaultColorID = "1"

const embedBaseURL = "https://calendar.google.com/calendar/embed"

// Event is a calendar entry built from one fixture.
type Event struct {
	Summary     string
	Description string
	Location    string
	ColorID     string
	Start       time.Time
	End         time.Time
}

// Calendar is a created, publicly readable calendar.
type Calendar struct {
	ID       string
	Name     string
	TimeZone string
}

func (c Calendar) PublicURL() string {
	return PublicURL(c.ID, c.TimeZone)
}

func (c Calendar) EmbedHTML() string {
	return EmbedHTML(c.ID, c.TimeZone)
}

// PublicURL is the embed link for a calendar rendered in timeZone.
func PublicURL(calendarID, timeZone string) string {
	return embedBaseURL + "?src=" + url.QueryEscape(calendarID) + "&ctz=" + url.QueryEscape(timeZone)
}

// EmbedHTML is an iframe snippet for the public calendar.
func EmbedHTML(calendarID, timeZone string) string {
	return `<iframe src="` + PublicURL(calendarID, timeZone) + `" style="border: 0" width="800" height="600" frameborder="0" scrolling="no"></iframe>`
}

// EventFromFixture maps a fixture into its calendar event.
func EventFromFixture(f fixture.Fixture, colorID string) Event {
	if colorID == "" {
		colorID = DefaultColorID
	}
	start := f.KickoffAt()

	return Event{
		Summary:     f.Teams.Home.Name + " vs " + f.Teams.Away.Name + " | " + f.League.Name,
		Description: describe(f),
		Location:    f.Fixture.Venue.Name + ", " + f.Fixture.Venue.City,
		ColorID:     colorID,
		Start:       start,
		End:         start.Add(EventDuration),
	}
}

func describe(f fixture.Fixture) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(f.League.Name)
	_, _ = buf.WriteString(" - ")
	_, _ = buf.WriteString(strconv.Itoa(f.League.Season))
	_, _ = buf.WriteString(" Season - Round: ")
	_, _ = buf.WriteString(RoundNumber(f.Fixture.Round))
	_ = buf.WriteByte('\n')
	_, _ = buf.WriteString(f.Teams.Home.Name)
	_, _ = buf.WriteString(" vs ")
	_, _ = buf.WriteString(f.Teams.Away.Name)
	_ = buf.WriteByte('\n')
	_, _ = buf.WriteString(f.Fixture.Venue.Name)
	_, _ = buf.WriteString(" - ")
	_, _ = buf.WriteString(f.Fixture.Venue.City)
	_, _ = buf.WriteString(", ")
	_, _ = buf.WriteString(f.League.Country)

	return buf.String()
}

// RoundNumber returns the trailing run of digits of an upstream round label,
// e.g. "Regular Season - 12" gives "12". Labels without trailing digits are
// returned unchanged.
func RoundNumber(round string) string {
	end := len(round)
	start := end
	for start > 0 && round[start-1] >= '0' && round[start-1] <= '9' {
		start--
	}
	if start == end {
		return round
	}
	return round[start:end]
}
