package model

import (
	"time"

	"coingecko-api/internal/types"
)

// View converts a row into its JSON representation. Null columns become
// null fields, timestamps are RFC3339 in UTC.
func (r *CoinPrices) View() types.CoinPrice {
	return types.CoinPrice{
		Id:                       r.Id,
		CoinId:                   r.CoinId,
		Symbol:                   r.Symbol,
		Name:                     r.Name,
		CurrentPrice:             floatPtr(r.CurrentPrice.Float64, r.CurrentPrice.Valid),
		MarketCap:                floatPtr(r.MarketCap.Float64, r.MarketCap.Valid),
		MarketCapRank:            intPtr(r.MarketCapRank.Int64, r.MarketCapRank.Valid),
		TotalVolume:              floatPtr(r.TotalVolume.Float64, r.TotalVolume.Valid),
		PriceChange24h:           floatPtr(r.PriceChange24h.Float64, r.PriceChange24h.Valid),
		PriceChangePercentage24h: floatPtr(r.PriceChangePercentage24h.Float64, r.PriceChangePercentage24h.Valid),
		MarketDominance:          floatPtr(r.MarketDominance.Float64, r.MarketDominance.Valid),
		VolumeToMarketCapRatio:   floatPtr(r.VolumeToMarketCapRatio.Float64, r.VolumeToMarketCapRatio.Valid),
		LastUpdated:              r.LastUpdated.UTC().Format(time.RFC3339),
		CreatedAt:                r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func floatPtr(v float64, valid bool) *float64 {
	if !valid {
		return nil
	}
	return &v
}

func intPtr(v int64, valid bool) *int64 {
	if !valid {
		return nil
	}
	return &v
}
