package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/futplanner/internal/config"
	"github.com/riskibarqy/futplanner/internal/domain/credential"
	"github.com/riskibarqy/futplanner/internal/domain/fixture"
	"github.com/riskibarqy/futplanner/internal/domain/league"
	"github.com/riskibarqy/futplanner/internal/infrastructure/fixturecache"
	cacherepo "github.com/riskibarqy/futplanner/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/futplanner/internal/infrastructure/repository/dynamo"
	"github.com/riskibarqy/futplanner/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/futplanner/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/futplanner/internal/platform/cache"
	"github.com/riskibarqy/futplanner/internal/platform/logging"
)

// resources tracks the connections opened while wiring so they can be closed
// together.
type resources struct {
	logger *logging.Logger
	db     *sqlx.DB
	redis  *redis.Client
}

func (r *resources) postgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	if r.db != nil {
		return r.db, nil
	}
	db, err := openPostgres(ctx, cfg.DBURL, cfg.DBDisablePreparedBinary)
	if err != nil {
		return nil, err
	}
	r.db = db
	r.logger.Info("postgres connected", "db_name", dbNameFromURL(cfg.DBURL))
	return db, nil
}

func (r *resources) leagueRepository(ctx context.Context, cfg config.Config) (league.Repository, error) {
	var repo league.Repository
	switch cfg.CatalogBackend {
	case config.BackendPostgres:
		db, err := r.postgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			return nil, err
		}
		repo = postgres.NewLeagueRepository(db)
	case config.BackendDynamoDB:
		client, err := dynamo.NewClient(ctx, cfg.DynamoDBRegion, cfg.DynamoDBEndpoint)
		if err != nil {
			return nil, err
		}
		repo = dynamo.NewLeagueRepository(client, cfg.DynamoDBTable)
	case config.BackendMemory, "":
		repo = memory.NewLeagueRepository(memory.SeedLeagues())
	default:
		return nil, fmt.Errorf("unsupported catalog backend %q", cfg.CatalogBackend)
	}

	if cfg.CacheEnabled {
		repo = cacherepo.NewLeagueRepository(repo, basecache.NewStore(cfg.CacheTTL))
	}
	return repo, nil
}

func (r *resources) credentialRepository(ctx context.Context, cfg config.Config) (credential.Repository, error) {
	switch cfg.CredentialBackend {
	case config.BackendPostgres:
		db, err := r.postgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return postgres.NewCredentialRepository(db), nil
	case config.BackendMemory, "":
		return memory.NewCredentialRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported credential backend %q", cfg.CredentialBackend)
	}
}

func (r *resources) fixtureSource(ctx context.Context, cfg config.Config, next fixture.Source) (fixture.Source, error) {
	switch cfg.FixtureCacheBackend {
	case config.BackendRedis:
		client, err := fixturecache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		r.redis = client
		return fixturecache.NewSource(next, fixturecache.NewRedisBackend(client), cfg.FixtureCacheTTL, r.logger), nil
	case config.BackendMemory:
		backend := fixturecache.NewMemoryBackend(basecache.NewStore(cfg.FixtureCacheTTL))
		return fixturecache.NewSource(next, backend, cfg.FixtureCacheTTL, r.logger), nil
	case config.BackendNone, "":
		return next, nil
	default:
		return nil, fmt.Errorf("unsupported fixture cache backend %q", cfg.FixtureCacheBackend)
	}
}

func (r *resources) Close() error {
	var errs []error
	if r.redis != nil {
		if err := r.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
		r.redis = nil
	}
	if r.db != nil {
		if err := r.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close postgres: %w", err))
		}
		r.db = nil
	}
	return errors.Join(errs...)
}
