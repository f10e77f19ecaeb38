package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"coingecko-api/internal/errs"
	dblogic "coingecko-api/internal/logic/db"
	"coingecko-api/internal/svc"
	"coingecko-api/internal/types"
)

func CreateCoinHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CreateCoinRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, errs.Validation("Invalid request payload", err, nil))
			return
		}

		l := dblogic.NewCreateCoinLogic(r.Context(), svcCtx)
		resp, err := l.CreateCoin(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func GetCoinHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CoinPathRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, errs.Validation("Invalid request parameters", err, nil))
			return
		}

		l := dblogic.NewGetCoinLogic(r.Context(), svcCtx)
		resp, err := l.GetCoin(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func UpdateCoinHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.UpdateCoinRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, errs.Validation("Invalid request payload", err, nil))
			return
		}

		l := dblogic.NewUpdateCoinLogic(r.Context(), svcCtx)
		resp, err := l.UpdateCoin(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func DeleteCoinHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CoinPathRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, errs.Validation("Invalid request parameters", err, nil))
			return
		}

		l := dblogic.NewDeleteCoinLogic(r.Context(), svcCtx)
		resp, err := l.DeleteCoin(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
