// Command ingest runs one fetch-transform-persist cycle from the command
// line. It is meant for cron jobs and for backfilling the store without
// going through the HTTP surface.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"coingecko-api/internal/cli"
	"coingecko-api/internal/config"
	"coingecko-api/internal/svc"
	"coingecko-api/pkg/coingecko"
	"coingecko-api/pkg/transform"
)

var (
	configFile = flag.String("f", "etc/coingecko-api.yaml", "the config file")
	vsCurrency = flag.String("vs-currency", "usd", "quote currency")
	page       = flag.Int("page", 1, "result page to fetch")
	perPage    = flag.Int("per-page", 100, "records per page (1-250)")
	timeout    = flag.Duration("timeout", time.Minute, "overall run timeout")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("[ingest] load config: %v", err)
	}
	log.Println("[ingest] Configuration loaded:")
	for _, line := range cli.ConfigSummaryLines(cfg) {
		log.Printf("  - %s", line)
	}

	svcCtx := svc.NewServiceContext(*cfg)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	raw, err := svcCtx.Provider.Markets(ctx, coingecko.MarketsParams{
		VsCurrency: *vsCurrency,
		Page:       *page,
		PerPage:    *perPage,
	})
	if err != nil {
		log.Fatalf("[ingest] fetch failed: %v", err)
	}
	log.Printf("[ingest] fetched %d records in %dms", len(raw), time.Since(start).Milliseconds())

	enriched := transform.MarketData(raw)
	if len(enriched) == 0 {
		log.Println("[ingest] nothing to persist")
		return
	}

	rows, err := svcCtx.CoinPricesModel.InsertBatch(ctx, enriched)
	if err != nil {
		log.Fatalf("[ingest] persist failed: %v", err)
	}
	log.Printf("[ingest] persisted %d rows at %s", len(rows), rows[0].CreatedAt.Format(time.RFC3339))
}
