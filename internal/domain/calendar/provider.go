package calendar

import "context"

// Provider is an authorized session against the calendar service.
type Provider interface {
	CreateCalendar(ctx context.Context, name, description, timeZone string) (string, error)
	MakePublic(ctx context.Context, calendarID string) error
	InsertEvent(ctx context.Context, calendarID string, event Event) error
	DeleteCalendar(ctx context.Context, calendarID string) error
}
