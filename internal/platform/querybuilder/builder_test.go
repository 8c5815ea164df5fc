package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name", "teams").
		From("leagues").
		Where(Eq("country_name", "England"), Expr("jsonb_array_length(teams) > ?", 0)).
		OrderBy("name").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name, teams FROM leagues WHERE country_name = $1 AND jsonb_array_length(teams) > $2 ORDER BY name LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "England" || args[1] != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("user_credentials").
		Columns("user_id", "refresh_token").
		Values(int64(1), "r-1").
		Suffix("ON CONFLICT (user_id) DO UPDATE SET refresh_token = EXCLUDED.refresh_token").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO user_credentials (user_id, refresh_token) VALUES ($1, $2) ON CONFLICT (user_id) DO UPDATE SET refresh_token = EXCLUDED.refresh_token"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != int64(1) || args[1] != "r-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		UserID  int64  `db:"user_id"`
		Name    string `db:"name"`
		Ignored string `db:"-"`
		secret  string
	}

	query, args, err := InsertModel("user_credentials", row{UserID: 7, Name: "root", Ignored: "x", secret: "y"}, "RETURNING user_id")
	if err != nil {
		t.Fatalf("build insert model: %v", err)
	}

	wantQuery := "INSERT INTO user_credentials (user_id, name) VALUES ($1, $2) RETURNING user_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != int64(7) || args[1] != "root" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_RejectsNonStruct(t *testing.T) {
	if _, _, err := InsertModel("t", 42, ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
}

func TestUpsertModel(t *testing.T) {
	type row struct {
		ID        int64  `db:"id"`
		Name      string `db:"name"`
		CreatedBy string `db:"created_by,readonly"`
	}

	query, args, err := UpsertModel("leagues", row{ID: 39, Name: "Premier League", CreatedBy: "seed"}, []string{"id"}, "updated_at = NOW()")
	if err != nil {
		t.Fatalf("build upsert model: %v", err)
	}

	wantQuery := "INSERT INTO leagues (id, name, created_by) VALUES ($1, $2, $3) ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != "seed" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := UpsertModel("leagues", row{ID: 1}, nil); err == nil {
		t.Fatalf("expected error without conflict columns")
	}
}

func TestUpsertModel_OnlyKeyColumns(t *testing.T) {
	type row struct {
		ID int64 `db:"id"`
	}

	query, _, err := UpsertModel("seen", row{ID: 1}, []string{"id"})
	if err != nil {
		t.Fatalf("build upsert model: %v", err)
	}
	if query != "INSERT INTO seen (id) VALUES ($1) ON CONFLICT (id) DO NOTHING" {
		t.Fatalf("unexpected query: %s", query)
	}
}
