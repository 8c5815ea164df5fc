package postgres

import (
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/futplanner/internal/domain/league"
)

type leagueTableModel struct {
	ID            int64      `db:"id"`
	Name          string     `db:"name"`
	CurrentSeason int        `db:"current_season"`
	Logo          string     `db:"logo"`
	CountryName   string     `db:"country_name"`
	CountryFlag   string     `db:"country_flag"`
	Teams         []byte     `db:"teams"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

type leagueInsertModel struct {
	ID            int64  `db:"id"`
	Name          string `db:"name"`
	CurrentSeason int    `db:"current_season"`
	Logo          string `db:"logo"`
	CountryName   string `db:"country_name"`
	CountryFlag   string `db:"country_flag"`
	Teams         string `db:"teams"`
}

// teamDocument is the JSONB shape of one element of leagues.teams.
type teamDocument struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

func leagueFromRow(row leagueTableModel) (league.League, error) {
	teams, err := decodeTeams(row.Teams)
	if err != nil {
		return league.League{}, fmt.Errorf("decode teams of league %d: %w", row.ID, err)
	}
	return league.League{
		ID:            row.ID,
		Name:          row.Name,
		CurrentSeason: row.CurrentSeason,
		Logo:          row.Logo,
		CountryName:   row.CountryName,
		CountryFlag:   row.CountryFlag,
		Teams:         teams,
	}, nil
}

func leagueToInsertModel(l league.League) (leagueInsertModel, error) {
	teams, err := encodeTeams(l.Teams)
	if err != nil {
		return leagueInsertModel{}, fmt.Errorf("encode teams of league %d: %w", l.ID, err)
	}
	return leagueInsertModel{
		ID:            l.ID,
		Name:          l.Name,
		CurrentSeason: l.CurrentSeason,
		Logo:          l.Logo,
		CountryName:   l.CountryName,
		CountryFlag:   l.CountryFlag,
		Teams:         teams,
	}, nil
}

func decodeTeams(raw []byte) ([]league.Team, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var docs []teamDocument
	if err := sonic.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	out := make([]league.Team, 0, len(docs))
	for _, doc := range docs {
		out = append(out, league.Team{ID: doc.ID, Name: doc.Name, Logo: doc.Logo})
	}
	return out, nil
}

func encodeTeams(items []league.Team) (string, error) {
	docs := make([]teamDocument, 0, len(items))
	for _, item := range items {
		docs = append(docs, teamDocument{ID: item.ID, Name: item.Name, Logo: item.Logo})
	}
	raw, err := sonic.Marshal(docs)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
