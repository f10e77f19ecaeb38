package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"coingecko-api/internal/errs"
	"coingecko-api/internal/model"
	"coingecko-api/internal/svc"
	"coingecko-api/internal/types"
)

type CreateCoinLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCreateCoinLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CreateCoinLogic {
	return &CreateCoinLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *CreateCoinLogic) CreateCoin(req *types.CreateCoinRequest) (*types.MessageResponse, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}
	lastUpdated, err := model.ParseProviderTime(req.LastUpdated)
	if err != nil {
		return nil, errs.Validation("Invalid last_updated timestamp", err, map[string]any{"last_updated": req.LastUpdated})
	}

	row := &model.CoinPrices{
		CoinId:                   req.CoinId,
		Symbol:                   req.Symbol,
		Name:                     req.Name,
		CurrentPrice:             sql.NullFloat64{Float64: req.CurrentPrice, Valid: true},
		MarketCap:                sql.NullFloat64{Float64: req.MarketCap, Valid: true},
		MarketCapRank:            sql.NullInt64{Int64: req.MarketCapRank, Valid: true},
		TotalVolume:              sql.NullFloat64{Float64: req.TotalVolume, Valid: true},
		PriceChange24h:           sql.NullFloat64{Float64: req.PriceChange24h, Valid: true},
		PriceChangePercentage24h: sql.NullFloat64{Float64: req.PriceChangePercentage24h, Valid: true},
		LastUpdated:              lastUpdated,
	}
	if req.MarketDominance != nil {
		row.MarketDominance = sql.NullFloat64{Float64: *req.MarketDominance, Valid: true}
	}
	if req.VolumeToMarketCapRatio != nil {
		row.VolumeToMarketCapRatio = sql.NullFloat64{Float64: *req.VolumeToMarketCapRatio, Valid: true}
	}

	created, err := l.svcCtx.CoinPricesModel.Insert(l.ctx, row)
	if err != nil {
		l.Errorf("create coin %s failed: %v", req.CoinId, err)
		return nil, errs.Validation("Failed to create record", err, nil)
	}

	invalidateCoin(l.ctx, l.svcCtx, req.CoinId)

	view := created.View()
	return &types.MessageResponse{Message: "Record created successfully", Data: &view}, nil
}

func validateCreate(req *types.CreateCoinRequest) error {
	missing := []string{}
	for field, value := range map[string]string{
		"coin_id":      req.CoinId,
		"symbol":       req.Symbol,
		"name":         req.Name,
		"last_updated": req.LastUpdated,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return errs.Validation("Missing required fields", nil, map[string]any{"fields": missing})
	}
	return nil
}
