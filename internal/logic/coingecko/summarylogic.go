package coingecko

import (
	"context"
	"net/http"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"coingecko-api/internal/svc"
	"coingecko-api/internal/types"
	cg "coingecko-api/pkg/coingecko"
	"coingecko-api/pkg/transform"
)

type SummaryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSummaryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SummaryLogic {
	return &SummaryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Summary fetches one page of market data and reduces it to batch-wide
// statistics. Nothing is persisted on this path.
func (l *SummaryLogic) Summary(req *types.MarketsRequest) (*transform.MarketSummary, error) {
	params := cg.MarketsParams{
		VsCurrency: req.VsCurrency,
		Page:       req.Page,
		PerPage:    req.PerPage,
		Sparkline:  req.Sparkline,
	}

	l.svcCtx.Reporter.OnRequest(l.ctx, "coins/markets", map[string]any{
		"vs_currency": req.VsCurrency,
		"page":        req.Page,
		"per_page":    req.PerPage,
	})

	start := time.Now()
	raw, err := l.svcCtx.Provider.Markets(l.ctx, params)
	if err != nil {
		l.svcCtx.Reporter.OnError(l.ctx, "Error fetching market data from CoinGecko", err,
			map[string]any{"vs_currency": req.VsCurrency, "page": req.Page})
		return nil, fetchError(err)
	}
	l.svcCtx.Reporter.OnResponse(l.ctx, "coins/markets", http.StatusOK, time.Since(start))

	summary := transform.Summarize(transform.MarketData(raw))
	return &summary, nil
}
