// Package transform enriches raw CoinGecko market records with derived
// metrics before persistence.
package transform

import (
	"encoding/json"
	"strconv"
	"time"

	"coingecko-api/pkg/coingecko"
)

// EnrichedRecord is one market record after normalisation and enrichment.
// Pointer fields are nil when the provider omitted the value or sent
// something that could not be coerced; downstream consumers must treat nil
// as "unknown", never as zero.
type EnrichedRecord struct {
	ID                       *string   `json:"id"`
	Symbol                   *string   `json:"symbol"`
	Name                     *string   `json:"name"`
	CurrentPrice             *float64  `json:"current_price"`
	MarketCap                *float64  `json:"market_cap"`
	MarketCapRank            *int64    `json:"market_cap_rank"`
	TotalVolume              *float64  `json:"total_volume"`
	PriceChange24h           *float64  `json:"price_change_24h"`
	PriceChangePercentage24h *float64  `json:"price_change_percentage_24h"`
	MarketDominance          *float64  `json:"market_dominance"`
	VolumeToMarketCapRatio   *float64  `json:"volume_to_market_cap_ratio"`
	LastUpdated              *string   `json:"last_updated"`
	ProcessedAt              time.Time `json:"processed_at"`
}

// MarketData normalises and enriches one batch of raw market records.
//
// Missing or unparseable fields become nil rather than errors. Two metrics
// are derived per record: market_dominance (the record's share of the batch
// total market cap, as a percentage) and volume_to_market_cap_ratio. A zero
// or unknown denominator yields nil, never a division error. Input order is
// preserved, duplicates included, and every record in the batch carries the
// same processed_at instant.
func MarketData(raw []coingecko.RawMarketRecord) []EnrichedRecord {
	records := make([]EnrichedRecord, 0, len(raw))
	if len(raw) == 0 {
		return records
	}

	processedAt := time.Now().UTC()

	totalMarketCap := 0.0
	for _, rec := range raw {
		if cap := floatField(rec, coingecko.FieldMarketCap); cap != nil {
			totalMarketCap += *cap
		}
	}

	for _, rec := range raw {
		enriched := EnrichedRecord{
			ID:                       stringField(rec, coingecko.FieldID),
			Symbol:                   stringField(rec, coingecko.FieldSymbol),
			Name:                     stringField(rec, coingecko.FieldName),
			CurrentPrice:             floatField(rec, coingecko.FieldCurrentPrice),
			MarketCap:                floatField(rec, coingecko.FieldMarketCap),
			MarketCapRank:            intField(rec, coingecko.FieldMarketCapRank),
			TotalVolume:              floatField(rec, coingecko.FieldTotalVolume),
			PriceChange24h:           floatField(rec, coingecko.FieldPriceChange24h),
			PriceChangePercentage24h: floatField(rec, coingecko.FieldPriceChangePercentage24h),
			LastUpdated:              stringField(rec, coingecko.FieldLastUpdated),
			ProcessedAt:              processedAt,
		}

		if enriched.MarketCap != nil && totalMarketCap != 0 {
			dominance := *enriched.MarketCap / totalMarketCap * 100
			enriched.MarketDominance = &dominance
		}
		if enriched.MarketCap != nil && *enriched.MarketCap != 0 && enriched.TotalVolume != nil {
			ratio := *enriched.TotalVolume / *enriched.MarketCap
			enriched.VolumeToMarketCapRatio = &ratio
		}

		records = append(records, enriched)
	}
	return records
}

func stringField(rec coingecko.RawMarketRecord, key string) *string {
	v, ok := rec[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func floatField(rec coingecko.RawMarketRecord, key string) *float64 {
	v, ok := rec[key]
	if !ok || v == nil {
		return nil
	}
	f, ok := toFloat64(v)
	if !ok {
		return nil
	}
	return &f
}

func intField(rec coingecko.RawMarketRecord, key string) *int64 {
	f := floatField(rec, key)
	if f == nil {
		return nil
	}
	n := int64(*f)
	return &n
}

func toFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
