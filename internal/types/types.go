// Code scaffolded by goctl. Safe to edit.
package types

import (
	"coingecko-api/pkg/transform"
)

// BaseResponse carries a bare status line.
type BaseResponse struct {
	Status string `json:"status"`
}

// MarketsRequest selects one page of provider market data.
type MarketsRequest struct {
	VsCurrency string `form:"vs_currency,default=usd"`
	Page       int    `form:"page,default=1"`
	PerPage    int    `form:"per_page,default=100"`
	Sparkline  bool   `form:"sparkline,default=false"`
}

// MarketsResponse returns the enriched batch to the caller.
type MarketsResponse struct {
	Data       []transform.EnrichedRecord `json:"data"`
	TotalCount int                        `json:"total_count"`
	Page       int                        `json:"page"`
	PerPage    int                        `json:"per_page"`
}

// StoredDataResponse lists the most recently persisted rows.
type StoredDataResponse struct {
	Count        int         `json:"count"`
	LatestUpdate *string     `json:"latest_update"`
	Data         []CoinPrice `json:"data"`
}

// CoinPrice is the JSON view of one persisted row.
type CoinPrice struct {
	Id                       int64    `json:"id"`
	CoinId                   string   `json:"coin_id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	CurrentPrice             *float64 `json:"current_price"`
	MarketCap                *float64 `json:"market_cap"`
	MarketCapRank            *int64   `json:"market_cap_rank"`
	TotalVolume              *float64 `json:"total_volume"`
	PriceChange24h           *float64 `json:"price_change_24h"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
	MarketDominance          *float64 `json:"market_dominance"`
	VolumeToMarketCapRatio   *float64 `json:"volume_to_market_cap_ratio"`
	LastUpdated              string   `json:"last_updated"`
	CreatedAt                string   `json:"created_at"`
}

// CreateCoinRequest is the full payload for a new row.
type CreateCoinRequest struct {
	CoinId                   string   `json:"coin_id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	CurrentPrice             float64  `json:"current_price"`
	MarketCap                float64  `json:"market_cap"`
	MarketCapRank            int64    `json:"market_cap_rank"`
	TotalVolume              float64  `json:"total_volume"`
	PriceChange24h           float64  `json:"price_change_24h"`
	PriceChangePercentage24h float64  `json:"price_change_percentage_24h"`
	MarketDominance          *float64 `json:"market_dominance,optional"`
	VolumeToMarketCapRatio   *float64 `json:"volume_to_market_cap_ratio,optional"`
	LastUpdated              string   `json:"last_updated"`
}

// CoinPathRequest addresses a row by its natural key.
type CoinPathRequest struct {
	CoinId string `path:"coin_id"`
}

// UpdateCoinRequest is a partial update; absent fields stay untouched.
type UpdateCoinRequest struct {
	CoinId                   string   `path:"coin_id"`
	CurrentPrice             *float64 `json:"current_price,optional"`
	MarketCap                *float64 `json:"market_cap,optional"`
	MarketCapRank            *int64   `json:"market_cap_rank,optional"`
	TotalVolume              *float64 `json:"total_volume,optional"`
	PriceChange24h           *float64 `json:"price_change_24h,optional"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h,optional"`
	MarketDominance          *float64 `json:"market_dominance,optional"`
	VolumeToMarketCapRatio   *float64 `json:"volume_to_market_cap_ratio,optional"`
	LastUpdated              *string  `json:"last_updated,optional"`
}

// MessageResponse confirms a CRUD mutation and echoes the affected row.
type MessageResponse struct {
	Message string     `json:"message"`
	Data    *CoinPrice `json:"data,omitempty"`
}
