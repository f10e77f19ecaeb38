package coingecko

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"coingecko-api/internal/errs"
	"coingecko-api/internal/svc"
	"coingecko-api/internal/types"
	cg "coingecko-api/pkg/coingecko"
	"coingecko-api/pkg/transform"
)

// MarketsLogic runs one ingestion cycle: fetch, transform, persist, respond.
type MarketsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewMarketsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *MarketsLogic {
	return &MarketsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *MarketsLogic) Markets(req *types.MarketsRequest) (*types.MarketsResponse, error) {
	params := cg.MarketsParams{
		VsCurrency: req.VsCurrency,
		Page:       req.Page,
		PerPage:    req.PerPage,
		Sparkline:  req.Sparkline,
	}
	details := map[string]any{"vs_currency": req.VsCurrency, "page": req.Page}

	l.svcCtx.Reporter.OnRequest(l.ctx, "coins/markets", map[string]any{
		"vs_currency": req.VsCurrency,
		"page":        req.Page,
		"per_page":    req.PerPage,
		"sparkline":   req.Sparkline,
	})

	start := time.Now()
	raw, err := l.svcCtx.Provider.Markets(l.ctx, params)
	if err != nil {
		l.svcCtx.Reporter.OnError(l.ctx, "Error fetching market data from CoinGecko", err, details)
		return nil, fetchError(err)
	}
	l.svcCtx.Reporter.OnResponse(l.ctx, "coins/markets", http.StatusOK, time.Since(start))

	enriched := transform.MarketData(raw)

	// Persistence failure does not fail the request: callers want live
	// market data even when the store is degraded.
	if len(enriched) > 0 {
		if _, err := l.svcCtx.CoinPricesModel.InsertBatch(l.ctx, enriched); err != nil {
			l.svcCtx.Reporter.OnError(l.ctx, "Failed to persist market data batch", err, details)
		}
	}

	return &types.MarketsResponse{
		Data:       enriched,
		TotalCount: len(enriched),
		Page:       req.Page,
		PerPage:    req.PerPage,
	}, nil
}

// fetchError maps provider failures onto the HTTP error taxonomy.
func fetchError(err error) error {
	var paramErr *cg.ParamError
	if errors.As(err, &paramErr) {
		return errs.Validation("Invalid request parameters", err, map[string]any{"error": err.Error()})
	}
	if cg.IsTransport(err) {
		return errs.Unavailable("CoinGecko API service unavailable", err, map[string]any{"error": err.Error()})
	}
	return errs.Internal(err)
}
