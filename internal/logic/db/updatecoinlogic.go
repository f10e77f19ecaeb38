package db

import (
	"context"
	"errors"

	"github.com/zeromicro/go-zero/core/logx"

	"coingecko-api/internal/errs"
	"coingecko-api/internal/model"
	"coingecko-api/internal/svc"
	"coingecko-api/internal/types"
)

type UpdateCoinLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewUpdateCoinLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UpdateCoinLogic {
	return &UpdateCoinLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// UpdateCoin applies a partial update to the most recently created row for
// the natural key. Absent fields are left untouched.
func (l *UpdateCoinLogic) UpdateCoin(req *types.UpdateCoinRequest) (*types.MessageResponse, error) {
	patch := &model.CoinPriceUpdate{
		CurrentPrice:             req.CurrentPrice,
		MarketCap:                req.MarketCap,
		MarketCapRank:            req.MarketCapRank,
		TotalVolume:              req.TotalVolume,
		PriceChange24h:           req.PriceChange24h,
		PriceChangePercentage24h: req.PriceChangePercentage24h,
		MarketDominance:          req.MarketDominance,
		VolumeToMarketCapRatio:   req.VolumeToMarketCapRatio,
	}
	if req.LastUpdated != nil {
		parsed, err := model.ParseProviderTime(*req.LastUpdated)
		if err != nil {
			return nil, errs.Validation("Invalid last_updated timestamp", err, map[string]any{"last_updated": *req.LastUpdated})
		}
		patch.LastUpdated = &parsed
	}

	row, err := l.svcCtx.CoinPricesModel.Update(l.ctx, req.CoinId, patch)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errs.NotFound("Coin not found")
		}
		l.Errorf("update coin %s failed: %v", req.CoinId, err)
		return nil, errs.Validation("Failed to update record", err, nil)
	}

	invalidateCoin(l.ctx, l.svcCtx, req.CoinId)

	view := row.View()
	return &types.MessageResponse{Message: "Record updated successfully", Data: &view}, nil
}
