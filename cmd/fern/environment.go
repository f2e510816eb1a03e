package main

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Ramsey-B/fern/config"
	"github.com/Ramsey-B/fern/pkg/linkresolver"
	"github.com/Ramsey-B/fern/pkg/mapconfig"
	"github.com/Ramsey-B/fern/pkg/mapper"
	"github.com/Ramsey-B/fern/pkg/media"
	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/nodestore/memory"
	"github.com/Ramsey-B/fern/pkg/nodestore/postgres"
	"github.com/Ramsey-B/fern/pkg/plan"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

//go:embed site.yaml
var demoSite []byte

// environment holds the collaborators of one CLI invocation.
type environment struct {
	cfg    *config.Config
	zap    *zap.Logger
	logger ectologger.Logger
	store  models.NodeStore
	fixed  *memory.Store
	mapper *mapper.Mapper
	plans  plan.Cache
	redis  *redis.Client
	db     *sqlx.DB
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if cfg.PrettyLogs {
		zapConfig = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zapConfig.Level = level
	return zapConfig.Build(zap.Fields(zap.String("app", cfg.AppName)))
}

func newEnvironment(ctx context.Context, cfg *config.Config) (*environment, error) {
	zapLogger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	env := &environment{
		cfg:    cfg,
		zap:    zapLogger,
		logger: zapadapter.NewZapEctoLogger(zapLogger, nil),
	}
	if cfg.TracingEnabled {
		tracing.UseGlobalProvider()
	}
	metrics.SetEnabled(cfg.MetricsEnabled)

	if err := env.openStore(ctx); err != nil {
		env.Close()
		return nil, err
	}

	resolver, err := linkresolver.New(env.store, cfg.BaseURL)
	if err != nil {
		env.Close()
		return nil, err
	}
	if env.fixed != nil {
		env.fixed.UseLinkResolver(resolver)
	} else if pg, ok := env.store.(*postgres.Store); ok {
		pg.UseLinkResolver(resolver)
	}

	env.plans = plan.NewMemoryCache(cfg.PlanCacheMaxSize)
	if cfg.RedisAddr != "" {
		env.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		env.plans = plan.NewRedisCache(env.redis, env.logger,
			plan.WithTTL(cfg.PlanCacheTTL),
			plan.WithLocal(plan.NewMemoryCache(cfg.PlanCacheMaxSize)),
		)
	}

	provider := mapconfig.NewProvider(mapconfig.FileLoader(cfg.MapperConfigPath))
	mapperConfig, err := provider.Get()
	if err != nil {
		env.Close()
		return nil, err
	}
	if err := mapperConfig.Validate(); err != nil {
		env.Close()
		return nil, err
	}

	opts := []mapper.Option{
		mapper.WithNodeStore(env.store),
		mapper.WithLinkResolver(resolver),
		mapper.WithLogger(env.logger),
		mapper.WithPlanCache(env.plans),
		mapper.WithConfigurationProvider(provider),
	}
	if cfg.MediaRoot != "" {
		assets, err := media.NewCachingService(media.NewDir(cfg.MediaRoot), cfg.MediaCacheSize, media.WithLogger(env.logger))
		if err != nil {
			env.Close()
			return nil, err
		}
		opts = append(opts, mapper.WithMediaService(assets))
	}

	env.mapper, err = mapper.New(opts...)
	if err != nil {
		env.Close()
		return nil, err
	}
	return env, nil
}

func (e *environment) openStore(ctx context.Context) error {
	if e.cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, e.cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		db.SetMaxOpenConns(e.cfg.DatabaseMaxOpenConns)
		db.SetMaxIdleConns(e.cfg.DatabaseMaxIdleConns)
		db.SetConnMaxLifetime(e.cfg.DatabaseConnMaxLifetime)
		e.db = db
		e.store = postgres.New(db, e.logger)
		return nil
	}

	store := memory.New()
	var err error
	if e.cfg.FixturePath != "" {
		err = store.LoadFile(e.cfg.FixturePath)
	} else {
		err = store.Load(demoSite)
	}
	if err != nil {
		return err
	}
	e.fixed = store
	e.store = store
	return nil
}

// findNode accepts a node id, or a node name for fixture stores.
func (e *environment) findNode(ctx context.Context, ref string) (*models.Node, error) {
	if id, err := uuid.Parse(ref); err == nil {
		node, err := e.store.GetNode(ctx, id)
		if err != nil {
			return nil, err
		}
		if node == nil {
			return nil, fmt.Errorf("node %s not found", id)
		}
		return node, nil
	}
	if e.fixed != nil {
		if node := e.fixed.FindByName(ref); node != nil {
			return node, nil
		}
	}
	return nil, fmt.Errorf("node %q not found", ref)
}

func (e *environment) Close() {
	if e.redis != nil {
		_ = e.redis.Close()
	}
	if e.db != nil {
		_ = e.db.Close()
	}
	if e.zap != nil {
		_ = e.zap.Sync()
	}
}
