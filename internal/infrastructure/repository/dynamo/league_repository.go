package dynamo

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/riskibarqy/futplanner/internal/domain/league"
)

// DynamoDBAPI is the subset of the client the catalog reads with.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// LeagueRepository reads the catalog from a table keyed by the numeric
// league id (PK "id", N). Teams are stored as a list of maps.
type LeagueRepository struct {
	ddb   DynamoDBAPI
	table string
}

var _ league.Repository = (*LeagueRepository)(nil)

func NewLeagueRepository(ddb DynamoDBAPI, table string) *LeagueRepository {
	return &LeagueRepository{ddb: ddb, table: table}
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID int64) (league.League, bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(leagueID, 10)},
		},
	})
	if err != nil {
		return league.League{}, false, fmt.Errorf("get league %d: %w", leagueID, err)
	}
	if len(out.Item) == 0 {
		return league.League{}, false, nil
	}
	return leagueFromItem(out.Item), true, nil
}

func (r *LeagueRepository) ListWithTeams(ctx context.Context) ([]league.League, error) {
	var (
		out   []league.League
		start map[string]types.AttributeValue
	)
	for {
		page, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.table),
			ExclusiveStartKey: start,
		})
		if err != nil {
			return nil, fmt.Errorf("scan leagues: %w", err)
		}
		for _, item := range page.Items {
			l := leagueFromItem(item)
			if l.ID < 1 || !l.HasTeams() {
				continue
			}
			out = append(out, l)
		}
		if len(page.LastEvaluatedKey) == 0 {
			break
		}
		start = page.LastEvaluatedKey
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *LeagueRepository) Upsert(ctx context.Context, l league.League) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if _, err := r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      leagueToItem(l),
	}); err != nil {
		return fmt.Errorf("put league %d: %w", l.ID, err)
	}
	return nil
}

func leagueFromItem(item map[string]types.AttributeValue) league.League {
	l := league.League{
		ID:            getInt64(item, "id"),
		Name:          getStr(item, "name"),
		CurrentSeason: int(getInt64(item, "current_season")),
		Logo:          getStr(item, "logo"),
		CountryName:   getStr(item, "country_name"),
		CountryFlag:   getStr(item, "country_flag"),
	}
	if list, ok := item["teams"].(*types.AttributeValueMemberL); ok {
		l.Teams = make([]league.Team, 0, len(list.Value))
		for _, v := range list.Value {
			m, ok := v.(*types.AttributeValueMemberM)
			if !ok {
				continue
			}
			l.Teams = append(l.Teams, league.Team{
				ID:   getInt64(m.Value, "id"),
				Name: getStr(m.Value, "name"),
				Logo: getStr(m.Value, "logo"),
			})
		}
	}
	return l
}

func leagueToItem(l league.League) map[string]types.AttributeValue {
	teams := make([]types.AttributeValue, 0, len(l.Teams))
	for _, t := range l.Teams {
		teams = append(teams, &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"id":   &types.AttributeValueMemberN{Value: strconv.FormatInt(t.ID, 10)},
			"name": &types.AttributeValueMemberS{Value: t.Name},
			"logo": &types.AttributeValueMemberS{Value: t.Logo},
		}})
	}
	return map[string]types.AttributeValue{
		"id":             &types.AttributeValueMemberN{Value: strconv.FormatInt(l.ID, 10)},
		"name":           &types.AttributeValueMemberS{Value: l.Name},
		"current_season": &types.AttributeValueMemberN{Value: strconv.Itoa(l.CurrentSeason)},
		"logo":           &types.AttributeValueMemberS{Value: l.Logo},
		"country_name":   &types.AttributeValueMemberS{Value: l.CountryName},
		"country_flag":   &types.AttributeValueMemberS{Value: l.CountryFlag},
		"teams":          &types.AttributeValueMemberL{Value: teams},
	}
}

func getStr(m map[string]types.AttributeValue, key string) string {
	if s, ok := m[key].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func getInt64(m map[string]types.AttributeValue, key string) int64 {
	switch t := m[key].(type) {
	case *types.AttributeValueMemberN:
		n, _ := strconv.ParseInt(t.Value, 10, 64)
		return n
	case *types.AttributeValueMemberS:
		n, _ := strconv.ParseInt(t.Value, 10, 64)
		return n
	}
	return 0
}
