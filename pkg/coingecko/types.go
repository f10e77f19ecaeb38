package coingecko

// RawMarketRecord is one market row as returned by the /coins/markets
// endpoint. CoinGecko's schema is not contractually stable, so the record is
// kept as an open mapping: unknown fields are carried through untouched and
// every known field is optional.
type RawMarketRecord map[string]any

// Field names of interest within a RawMarketRecord.
const (
	FieldID                       = "id"
	FieldSymbol                   = "symbol"
	FieldName                     = "name"
	FieldCurrentPrice             = "current_price"
	FieldMarketCap                = "market_cap"
	FieldMarketCapRank            = "market_cap_rank"
	FieldTotalVolume              = "total_volume"
	FieldPriceChange24h           = "price_change_24h"
	FieldPriceChangePercentage24h = "price_change_percentage_24h"
	FieldLastUpdated              = "last_updated"
)

// MarketsParams selects the page of market data to fetch.
type MarketsParams struct {
	VsCurrency string
	Page       int
	PerPage    int
	Sparkline  bool
}

const (
	defaultVsCurrency = "usd"
	defaultPage       = 1
	defaultPerPage    = 100
	maxPerPage        = 250
)

// normalise applies CoinGecko's documented defaults to zero-valued fields.
func (p *MarketsParams) normalise() {
	if p.VsCurrency == "" {
		p.VsCurrency = defaultVsCurrency
	}
	if p.Page == 0 {
		p.Page = defaultPage
	}
	if p.PerPage == 0 {
		p.PerPage = defaultPerPage
	}
}

func (p *MarketsParams) validate() error {
	if p.Page < 1 {
		return &ParamError{Field: "page", Reason: "must be >= 1"}
	}
	if p.PerPage < 1 || p.PerPage > maxPerPage {
		return &ParamError{Field: "per_page", Reason: "must be within [1,250]"}
	}
	return nil
}
