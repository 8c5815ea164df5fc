package fixture

import "context"

// Source fetches fixtures from the sports data provider.
type Source interface {
	Fetch(ctx context.Context, query Query) ([]Fixture, error)
}
