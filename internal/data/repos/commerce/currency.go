package commerce

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type CurrencyRepo interface {
	gateway.Gateway[types.Currency]
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Currency, error)
	GetBase(ctx context.Context, tx *gorm.DB) (*types.Currency, error)
	// ClearBase unsets isBaseCurrency everywhere. It runs as one UPDATE so the
	// current base row stays locked until the caller's transaction ends.
	ClearBase(ctx context.Context, tx *gorm.DB) error
}

type currencyRepo struct {
	*gateway.Table[types.Currency]
}

func NewCurrencyRepo(db *gorm.DB, baseLog *logger.Logger) CurrencyRepo {
	return &currencyRepo{Table: gateway.NewTable[types.Currency](db, baseLog.With("repo", "CurrencyRepo"))}
}

func (r *currencyRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Currency, error) {
	return r.Find(ctx, tx, gateway.Where("code", code))
}

func (r *currencyRepo) GetBase(ctx context.Context, tx *gorm.DB) (*types.Currency, error) {
	return r.Find(ctx, tx, gateway.Where("is_base_currency", true))
}

func (r *currencyRepo) ClearBase(ctx context.Context, tx *gorm.DB) error {
	_, err := r.UpdateColumns(ctx, tx, gateway.Where("is_base_currency", true), map[string]any{"is_base_currency": false})
	return err
}
