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

type DeleteCoinLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDeleteCoinLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DeleteCoinLogic {
	return &DeleteCoinLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *DeleteCoinLogic) DeleteCoin(req *types.CoinPathRequest) (*types.MessageResponse, error) {
	if err := l.svcCtx.CoinPricesModel.Delete(l.ctx, req.CoinId); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errs.NotFound("Coin not found")
		}
		l.Errorf("delete coin %s failed: %v", req.CoinId, err)
		return nil, errs.Validation("Failed to delete record", err, nil)
	}

	invalidateCoin(l.ctx, l.svcCtx, req.CoinId)

	return &types.MessageResponse{Message: "Record deleted successfully"}, nil
}

// invalidateCoin drops cache entries that may now be stale.
func invalidateCoin(ctx context.Context, svcCtx *svc.ServiceContext, coinID string) {
	if svcCtx.Cache == nil {
		return
	}
	keys := []string{
		cachekeys.CoinKey(coinID),
		cachekeys.StoredDataKey(svcCtx.Config.StoredDataLimit),
	}
	for _, key := range keys {
		if err := svcCtx.Cache.DelCtx(ctx, key); err != nil {
			logx.WithContext(ctx).Errorf("cache invalidate %s: %v", key, err)
		}
	}
}
