package model

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

//go:embed schema.sql
var schemaDDL string

// EnsureSchema applies the coin_prices DDL. The statements are idempotent.
func EnsureSchema(ctx context.Context, conn sqlx.SqlConn) error {
	if _, err := conn.ExecCtx(ctx, schemaDDL); err != nil {
		return fmt.Errorf("apply coin_prices schema: %w", err)
	}
	return nil
}
