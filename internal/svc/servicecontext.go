package svc

import (
	"context"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/core/syncx"

	cachekeys "coingecko-api/internal/cache"
	"coingecko-api/internal/config"
	"coingecko-api/internal/model"
	"coingecko-api/internal/reporting"
	"coingecko-api/pkg/coingecko"
)

type ServiceContext struct {
	Config config.Config

	Provider *coingecko.Client
	Reporter reporting.Reporter

	DBConn          sqlx.SqlConn
	CoinPricesModel model.CoinPricesModel

	// Cache is nil when Redis is not configured; read paths degrade to
	// straight DB queries.
	Cache cache.Cache
	TTL   cachekeys.TTLSet
}

func NewServiceContext(c config.Config) *ServiceContext {
	svc := &ServiceContext{
		Config:   c,
		Reporter: reporting.NewLogxReporter(),
		TTL:      cachekeys.NewTTLSet(c.TTL),
	}

	if c.Provider.Value != nil {
		svc.Provider = c.Provider.Value.Build()
	} else {
		svc.Provider = coingecko.NewClient()
	}

	conn := sqlx.NewSqlConn("pgx", c.Postgres.DSN)
	svc.DBConn = conn
	svc.CoinPricesModel = model.NewCoinPricesModel(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := model.EnsureSchema(ctx, conn); err != nil {
		log.Fatalf("failed to ensure database schema: %v", err)
	}

	if c.Redis.Host != "" {
		cacheConf := cache.CacheConf{{RedisConf: c.Redis, Weight: 100}}
		svc.Cache = cache.New(cacheConf, syncx.NewSingleFlight(), cache.NewStat(cachekeys.Namespace), model.ErrNotFound)
	}

	return svc
}
