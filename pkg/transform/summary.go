package transform

import (
	"sort"
	"time"
)

// SymbolChange pairs a symbol with its 24h percentage move.
type SymbolChange struct {
	Symbol                   string  `json:"symbol"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
}

// MarketSummary aggregates batch-wide statistics over enriched records.
type MarketSummary struct {
	TotalMarketCap      float64        `json:"total_market_cap"`
	TotalVolume24h      float64        `json:"total_volume_24h"`
	AvgPriceChange24h   *float64       `json:"avg_price_change_24h"`
	NumCryptocurrencies int            `json:"num_cryptocurrencies"`
	TopGainers          []SymbolChange `json:"top_gainers"`
	TopLosers           []SymbolChange `json:"top_losers"`
	Timestamp           time.Time      `json:"timestamp"`
}

const summaryMovers = 5

// Summarize computes market summary statistics from one enriched batch.
// Records with unknown market cap, volume or change are left out of the
// corresponding aggregate.
func Summarize(records []EnrichedRecord) MarketSummary {
	summary := MarketSummary{
		NumCryptocurrencies: len(records),
		TopGainers:          []SymbolChange{},
		TopLosers:           []SymbolChange{},
		Timestamp:           time.Now().UTC(),
	}

	changeSum := 0.0
	changeCount := 0
	var movers []SymbolChange
	for _, rec := range records {
		if rec.MarketCap != nil {
			summary.TotalMarketCap += *rec.MarketCap
		}
		if rec.TotalVolume != nil {
			summary.TotalVolume24h += *rec.TotalVolume
		}
		if rec.PriceChangePercentage24h == nil {
			continue
		}
		changeSum += *rec.PriceChangePercentage24h
		changeCount++
		symbol := ""
		if rec.Symbol != nil {
			symbol = *rec.Symbol
		}
		movers = append(movers, SymbolChange{Symbol: symbol, PriceChangePercentage24h: *rec.PriceChangePercentage24h})
	}

	if changeCount > 0 {
		avg := changeSum / float64(changeCount)
		summary.AvgPriceChange24h = &avg
	}

	sort.SliceStable(movers, func(i, j int) bool {
		return movers[i].PriceChangePercentage24h > movers[j].PriceChangePercentage24h
	})
	for _, m := range movers {
		if m.PriceChangePercentage24h > 0 && len(summary.TopGainers) < summaryMovers {
			summary.TopGainers = append(summary.TopGainers, m)
		}
	}
	for i := len(movers) - 1; i >= 0; i-- {
		if movers[i].PriceChangePercentage24h < 0 && len(summary.TopLosers) < summaryMovers {
			summary.TopLosers = append(summary.TopLosers, movers[i])
		}
	}

	return summary
}
