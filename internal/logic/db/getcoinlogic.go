package db

import (
	"context"
	"errors"

	"github.com/zeromicro/go-zero/core/logx"

	cachekeys "coingecko-api/internal/cache"
	"coingecko-api/internal/errs"
	"coingecko-api/internal/model"
	"coingecko-api/internal/svc"
	"coingecko-api/internal/types"
)

type GetCoinLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetCoinLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetCoinLogic {
	return &GetCoinLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// GetCoin returns the most recently created row for the natural key.
func (l *GetCoinLogic) GetCoin(req *types.CoinPathRequest) (*types.CoinPrice, error) {
	key := cachekeys.CoinKey(req.CoinId)
	if l.svcCtx.Cache != nil {
		var cached types.CoinPrice
		if err := l.svcCtx.Cache.GetCtx(l.ctx, key, &cached); err == nil {
			return &cached, nil
		} else if !l.svcCtx.Cache.IsNotFound(err) {
			l.Errorf("coin cache read %s: %v", key, err)
		}
	}

	row, err := l.svcCtx.CoinPricesModel.FindOneByCoinId(l.ctx, req.CoinId)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errs.NotFound("Coin not found")
		}
		l.Errorf("get coin %s failed: %v", req.CoinId, err)
		return nil, errs.Internal(err)
	}

	view := row.View()
	if l.svcCtx.Cache != nil {
		if err := l.svcCtx.Cache.SetWithExpireCtx(l.ctx, key, view, l.svcCtx.TTL.Medium); err != nil {
			l.Errorf("coin cache write %s: %v", key, err)
		}
	}
	return &view, nil
}
