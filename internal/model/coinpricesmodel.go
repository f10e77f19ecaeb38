package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"coingecko-api/pkg/transform"
)

// CoinPrices is one row of the coin_prices table. Rows are append-only on
// the ingestion path; the CRUD surface may correct individual rows by
// natural key.
type CoinPrices struct {
	Id                       int64           `db:"id"`
	CoinId                   string          `db:"coin_id"`
	Symbol                   string          `db:"symbol"`
	Name                     string          `db:"name"`
	CurrentPrice             sql.NullFloat64 `db:"current_price"`
	MarketCap                sql.NullFloat64 `db:"market_cap"`
	MarketCapRank            sql.NullInt64   `db:"market_cap_rank"`
	TotalVolume              sql.NullFloat64 `db:"total_volume"`
	PriceChange24h           sql.NullFloat64 `db:"price_change_24h"`
	PriceChangePercentage24h sql.NullFloat64 `db:"price_change_percentage_24h"`
	MarketDominance          sql.NullFloat64 `db:"market_dominance"`
	VolumeToMarketCapRatio   sql.NullFloat64 `db:"volume_to_market_cap_ratio"`
	LastUpdated              time.Time       `db:"last_updated"`
	CreatedAt                time.Time       `db:"created_at"`
}

// CoinPriceUpdate is a field-mask update applied to one row. Nil fields are
// left untouched.
type CoinPriceUpdate struct {
	CurrentPrice             *float64   `json:"current_price,optional"`
	MarketCap                *float64   `json:"market_cap,optional"`
	MarketCapRank            *int64     `json:"market_cap_rank,optional"`
	TotalVolume              *float64   `json:"total_volume,optional"`
	PriceChange24h           *float64   `json:"price_change_24h,optional"`
	PriceChangePercentage24h *float64   `json:"price_change_percentage_24h,optional"`
	MarketDominance          *float64   `json:"market_dominance,optional"`
	VolumeToMarketCapRatio   *float64   `json:"volume_to_market_cap_ratio,optional"`
	LastUpdated              *time.Time `json:"last_updated,optional"`
}

// CoinPricesModel persists market data rows.
//
// InsertBatch is the ingestion write path: the whole batch commits in one
// transaction with a single created_at instant, or not at all. The remaining
// methods form the single-row CRUD path and carry no batch semantics. Lookups
// by natural key resolve to the most recently created row for that coin.
type CoinPricesModel interface {
	InsertBatch(ctx context.Context, batch []transform.EnrichedRecord) ([]*CoinPrices, error)
	Latest(ctx context.Context, limit int) ([]*CoinPrices, error)
	Insert(ctx context.Context, row *CoinPrices) (*CoinPrices, error)
	FindOneByCoinId(ctx context.Context, coinID string) (*CoinPrices, error)
	Update(ctx context.Context, coinID string, patch *CoinPriceUpdate) (*CoinPrices, error)
	Delete(ctx context.Context, coinID string) error
}

type defaultCoinPricesModel struct {
	conn sqlx.SqlConn
}

// NewCoinPricesModel returns a model backed by the given connection.
func NewCoinPricesModel(conn sqlx.SqlConn) CoinPricesModel {
	return &defaultCoinPricesModel{conn: conn}
}

const coinPriceColumns = `id, coin_id, symbol, name, current_price, market_cap, market_cap_rank, total_volume, price_change_24h, price_change_percentage_24h, market_dominance, volume_to_market_cap_ratio, last_updated, created_at`

const insertCoinPrice = `
INSERT INTO coin_prices (
    coin_id, symbol, name, current_price, market_cap, market_cap_rank,
    total_volume, price_change_24h, price_change_percentage_24h,
    market_dominance, volume_to_market_cap_ratio, last_updated, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id`

func (m *defaultCoinPricesModel) InsertBatch(ctx context.Context, batch []transform.EnrichedRecord) ([]*CoinPrices, error) {
	createdAt := time.Now().UTC()

	// Map every record up front so a malformed batch never opens a
	// transaction.
	rows := make([]*CoinPrices, 0, len(batch))
	for i, rec := range batch {
		row, err := rowFromEnriched(i, rec, createdAt)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return rows, nil
	}

	err := m.conn.TransactCtx(ctx, func(ctx context.Context, session sqlx.Session) error {
		for i, row := range rows {
			if err := session.QueryRowCtx(ctx, &row.Id, insertCoinPrice,
				row.CoinId, row.Symbol, row.Name,
				row.CurrentPrice, row.MarketCap, row.MarketCapRank,
				row.TotalVolume, row.PriceChange24h, row.PriceChangePercentage24h,
				row.MarketDominance, row.VolumeToMarketCapRatio,
				row.LastUpdated, row.CreatedAt,
			); err != nil {
				return fmt.Errorf("insert record %d (%s): %w", i, row.CoinId, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (m *defaultCoinPricesModel) Latest(ctx context.Context, limit int) ([]*CoinPrices, error) {
	if limit <= 0 {
		limit = 100
	}
	query := fmt.Sprintf(`SELECT %s FROM coin_prices ORDER BY created_at DESC, id DESC LIMIT $1`, coinPriceColumns)
	var rows []*CoinPrices
	if err := m.conn.QueryRowsCtx(ctx, &rows, query, limit); err != nil {
		return nil, err
	}
	return rows, nil
}

func (m *defaultCoinPricesModel) Insert(ctx context.Context, row *CoinPrices) (*CoinPrices, error) {
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if err := m.conn.QueryRowCtx(ctx, &row.Id, insertCoinPrice,
		row.CoinId, row.Symbol, row.Name,
		row.CurrentPrice, row.MarketCap, row.MarketCapRank,
		row.TotalVolume, row.PriceChange24h, row.PriceChangePercentage24h,
		row.MarketDominance, row.VolumeToMarketCapRatio,
		row.LastUpdated, row.CreatedAt,
	); err != nil {
		return nil, err
	}
	return row, nil
}

func (m *defaultCoinPricesModel) FindOneByCoinId(ctx context.Context, coinID string) (*CoinPrices, error) {
	query := fmt.Sprintf(`SELECT %s FROM coin_prices WHERE coin_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`, coinPriceColumns)
	var row CoinPrices
	err := m.conn.QueryRowCtx(ctx, &row, query, coinID)
	switch {
	case err == nil:
		return &row, nil
	case errors.Is(err, sqlx.ErrNotFound):
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultCoinPricesModel) Update(ctx context.Context, coinID string, patch *CoinPriceUpdate) (*CoinPrices, error) {
	sets, args := patch.assignments()
	if len(sets) == 0 {
		return m.FindOneByCoinId(ctx, coinID)
	}

	args = append(args, coinID)
	query := fmt.Sprintf(`
UPDATE coin_prices SET %s
WHERE id = (SELECT id FROM coin_prices WHERE coin_id = $%d ORDER BY created_at DESC, id DESC LIMIT 1)
RETURNING %s`, strings.Join(sets, ", "), len(args), coinPriceColumns)

	var row CoinPrices
	err := m.conn.QueryRowCtx(ctx, &row, query, args...)
	switch {
	case err == nil:
		return &row, nil
	case errors.Is(err, sqlx.ErrNotFound):
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultCoinPricesModel) Delete(ctx context.Context, coinID string) error {
	const query = `
DELETE FROM coin_prices
WHERE id = (SELECT id FROM coin_prices WHERE coin_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1)`
	result, err := m.conn.ExecCtx(ctx, query, coinID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// assignments builds the SET clause for the non-nil fields of the patch.
func (p *CoinPriceUpdate) assignments() ([]string, []any) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if p == nil {
		return sets, args
	}
	if p.CurrentPrice != nil {
		add("current_price", *p.CurrentPrice)
	}
	if p.MarketCap != nil {
		add("market_cap", *p.MarketCap)
	}
	if p.MarketCapRank != nil {
		add("market_cap_rank", *p.MarketCapRank)
	}
	if p.TotalVolume != nil {
		add("total_volume", *p.TotalVolume)
	}
	if p.PriceChange24h != nil {
		add("price_change_24h", *p.PriceChange24h)
	}
	if p.PriceChangePercentage24h != nil {
		add("price_change_percentage_24h", *p.PriceChangePercentage24h)
	}
	if p.MarketDominance != nil {
		add("market_dominance", *p.MarketDominance)
	}
	if p.VolumeToMarketCapRatio != nil {
		add("volume_to_market_cap_ratio", *p.VolumeToMarketCapRatio)
	}
	if p.LastUpdated != nil {
		add("last_updated", p.LastUpdated.UTC())
	}
	return sets, args
}

// rowFromEnriched maps one enriched record into a row. The natural key
// columns and last_updated are NOT NULL: last_updated is a query key, so
// silently nulling it would lose ordering information.
func rowFromEnriched(index int, rec transform.EnrichedRecord, createdAt time.Time) (*CoinPrices, error) {
	coinID, err := requiredString(index, "id", rec.ID)
	if err != nil {
		return nil, err
	}
	symbol, err := requiredString(index, "symbol", rec.Symbol)
	if err != nil {
		return nil, err
	}
	name, err := requiredString(index, "name", rec.Name)
	if err != nil {
		return nil, err
	}
	if rec.LastUpdated == nil {
		return nil, &BatchError{Index: index, Field: "last_updated", Err: errors.New("missing value")}
	}
	lastUpdated, err := ParseProviderTime(*rec.LastUpdated)
	if err != nil {
		return nil, &BatchError{Index: index, Field: "last_updated", Err: err}
	}

	return &CoinPrices{
		CoinId:                   coinID,
		Symbol:                   symbol,
		Name:                     name,
		CurrentPrice:             nullFloat(rec.CurrentPrice),
		MarketCap:                nullFloat(rec.MarketCap),
		MarketCapRank:            nullInt(rec.MarketCapRank),
		TotalVolume:              nullFloat(rec.TotalVolume),
		PriceChange24h:           nullFloat(rec.PriceChange24h),
		PriceChangePercentage24h: nullFloat(rec.PriceChangePercentage24h),
		MarketDominance:          nullFloat(rec.MarketDominance),
		VolumeToMarketCapRatio:   nullFloat(rec.VolumeToMarketCapRatio),
		LastUpdated:              lastUpdated,
		CreatedAt:                createdAt,
	}, nil
}

// ParseProviderTime parses the provider's last_updated timestamp: ISO-8601,
// optionally Z-suffixed, optionally without zone (taken as UTC).
func ParseProviderTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05.999999999", value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

func requiredString(index int, field string, v *string) (string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", &BatchError{Index: index, Field: field, Err: errors.New("missing value")}
	}
	return *v, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
