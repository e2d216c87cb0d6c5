package imports

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type ImportBatchRepo = gateway.Gateway[types.ImportBatch]

func NewImportBatchRepo(db *gorm.DB, baseLog *logger.Logger) ImportBatchRepo {
	return gateway.NewTable[types.ImportBatch](db, baseLog.With("repo", "ImportBatchRepo"))
}

// UnitVersionRepo is append-only. It exposes no update or delete.
type UnitVersionRepo interface {
	Append(ctx context.Context, tx *gorm.DB, rows []*types.UnitVersion) ([]*types.UnitVersion, error)
	ListForUnit(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) ([]*types.UnitVersion, error)
	CountForBatch(ctx context.Context, tx *gorm.DB, batchID uuid.UUID) (int64, error)
}

type unitVersionRepo struct {
	table *gateway.Table[types.UnitVersion]
}

func NewUnitVersionRepo(db *gorm.DB, baseLog *logger.Logger) UnitVersionRepo {
	return &unitVersionRepo{table: gateway.NewTable[types.UnitVersion](db, baseLog.With("repo", "UnitVersionRepo"))}
}

func (r *unitVersionRepo) Append(ctx context.Context, tx *gorm.DB, rows []*types.UnitVersion) ([]*types.UnitVersion, error) {
	return r.table.Create(ctx, tx, rows)
}

func (r *unitVersionRepo) ListForUnit(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) ([]*types.UnitVersion, error) {
	return r.table.FindMany(ctx, tx, gateway.Filter{
		Eq:    map[string]any{"unit_id": unitID},
		Order: "created_at DESC",
	})
}

func (r *unitVersionRepo) CountForBatch(ctx context.Context, tx *gorm.DB, batchID uuid.UUID) (int64, error) {
	return r.table.Count(ctx, tx, gateway.Where("import_batch_id", batchID))
}
