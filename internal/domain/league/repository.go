package league

import "context"

// Repository describes catalog reads needed by use cases. GetByID finds any
// league; ListWithTeams skips leagues whose team list is empty.
type Repository interface {
	GetByID(ctx context.Context, leagueID int64) (League, bool, error)
	ListWithTeams(ctx context.Context) ([]League, error)
}
