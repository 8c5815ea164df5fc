package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/futplanner/internal/domain/league"
	qb "github.com/riskibarqy/futplanner/internal/platform/querybuilder"
)

const leaguesTable = "leagues"

type LeagueRepository struct {
	db *sqlx.DB
}

var _ league.Repository = (*LeagueRepository)(nil)

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func leagueSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"id", "name", "current_season", "logo", "country_name", "country_flag",
		"teams", "created_at", "updated_at", "deleted_at",
	).From(leaguesTable)
}

func listWithTeamsBuilder() *qb.SelectBuilder {
	return leagueSelectBuilder().
		Where(
			qb.Expr("deleted_at IS NULL"),
			qb.Expr("jsonb_array_length(teams) > 0"),
		).
		OrderBy("id")
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID int64) (league.League, bool, error) {
	query, args, err := leagueSelectBuilder().
		Where(
			qb.Eq("id", leagueID),
			qb.Expr("deleted_at IS NULL"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		if isPreparedStatementConflict(err) {
			return r.getByIDLiteral(ctx, leagueID)
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}

	item, err := leagueFromRow(row)
	if err != nil {
		return league.League{}, false, err
	}
	return item, true, nil
}

// getByIDLiteral retries without bind parameters for poolers that drop
// unnamed prepared statements between round trips.
func (r *LeagueRepository) getByIDLiteral(ctx context.Context, leagueID int64) (league.League, bool, error) {
	query, _, err := leagueSelectBuilder().
		Where(
			qb.Expr(fmt.Sprintf("id = %d", leagueID)),
			qb.Expr("deleted_at IS NULL"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build literal get league query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}

	item, err := leagueFromRow(row)
	if err != nil {
		return league.League{}, false, err
	}
	return item, true, nil
}

func (r *LeagueRepository) ListWithTeams(ctx context.Context) ([]league.League, error) {
	query, args, err := listWithTeamsBuilder().
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		item, err := leagueFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// Upsert writes l, replacing the stored row when the id already exists.
func (r *LeagueRepository) Upsert(ctx context.Context, l league.League) error {
	query, args, err := buildLeagueUpsert(l)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert league %d: %w", l.ID, err)
	}
	return nil
}

func buildLeagueUpsert(l league.League) (string, []any, error) {
	if err := l.Validate(); err != nil {
		return "", nil, err
	}
	model, err := leagueToInsertModel(l)
	if err != nil {
		return "", nil, err
	}
	query, args, err := qb.UpsertModel(leaguesTable, model, []string{"id"}, "updated_at = NOW()", "deleted_at = NULL")
	if err != nil {
		return "", nil, fmt.Errorf("build upsert league query: %w", err)
	}
	return query, args, nil
}
