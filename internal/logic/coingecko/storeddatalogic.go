package coingecko

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	cachekeys "coingecko-api/internal/cache"
	"coingecko-api/internal/errs"
	"coingecko-api/internal/svc"
	"coingecko-api/internal/types"
)

type StoredDataLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewStoredDataLogic(ctx context.Context, svcCtx *svc.ServiceContext) *StoredDataLogic {
	return &StoredDataLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// StoredData returns the most recently persisted rows, newest first.
func (l *StoredDataLogic) StoredData() (*types.StoredDataResponse, error) {
	limit := l.svcCtx.Config.StoredDataLimit
	key := cachekeys.StoredDataKey(limit)

	if l.svcCtx.Cache != nil {
		var cached types.StoredDataResponse
		if err := l.svcCtx.Cache.GetCtx(l.ctx, key, &cached); err == nil {
			return &cached, nil
		} else if !l.svcCtx.Cache.IsNotFound(err) {
			l.Errorf("stored-data cache read %s: %v", key, err)
		}
	}

	rows, err := l.svcCtx.CoinPricesModel.Latest(l.ctx, limit)
	if err != nil {
		l.Errorf("stored-data query failed: %v", err)
		return nil, errs.Internal(err)
	}

	resp := &types.StoredDataResponse{
		Count: len(rows),
		Data:  make([]types.CoinPrice, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Data = append(resp.Data, row.View())
	}
	if len(rows) > 0 {
		latest := rows[0].CreatedAt.UTC().Format(time.RFC3339)
		resp.LatestUpdate = &latest
	}

	if l.svcCtx.Cache != nil {
		if err := l.svcCtx.Cache.SetWithExpireCtx(l.ctx, key, resp, l.svcCtx.TTL.Short); err != nil {
			l.Errorf("stored-data cache write %s: %v", key, err)
		}
	}
	return resp, nil
}
