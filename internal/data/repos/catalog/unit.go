package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type UnitRepo interface {
	gateway.Gateway[types.Unit]
	GetByIDOrSlug(ctx context.Context, tx *gorm.DB, key string) (*types.Unit, error)
	SlugExists(ctx context.Context, tx *gorm.DB, slug string) (bool, error)
	ListSimilar(ctx context.Context, tx *gorm.DB, unit *types.Unit, limit int) ([]*types.Unit, error)
}

type unitRepo struct {
	*gateway.Table[types.Unit]
	log *logger.Logger
}

func NewUnitRepo(db *gorm.DB, baseLog *logger.Logger) UnitRepo {
	repoLog := baseLog.With("repo", "UnitRepo")
	return &unitRepo{Table: gateway.NewTable[types.Unit](db, repoLog), log: repoLog}
}

func (r *unitRepo) GetByIDOrSlug(ctx context.Context, tx *gorm.DB, key string) (*types.Unit, error) {
	return r.Find(ctx, tx, idOrSlug(key))
}

func (r *unitRepo) SlugExists(ctx context.Context, tx *gorm.DB, slug string) (bool, error) {
	return r.Exists(ctx, tx, gateway.Where("slug", slug))
}

// ListSimilar returns available units in the same project with the same bedroom
// count, cheapest first, excluding unit itself.
func (r *unitRepo) ListSimilar(ctx context.Context, tx *gorm.DB, unit *types.Unit, limit int) ([]*types.Unit, error) {
	if unit == nil {
		return []*types.Unit{}, nil
	}
	if limit <= 0 {
		limit = 4
	}
	rows, err := r.FindMany(ctx, tx, gateway.Filter{
		Eq: map[string]any{
			"project_id": unit.ProjectID,
			"bedrooms":   unit.Bedrooms,
			"status":     types.UnitStatusAvailable,
		},
		Order: "price ASC, number ASC",
		Limit: limit + 1,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*types.Unit, 0, limit)
	for _, u := range rows {
		if u.ID == unit.ID || len(out) == limit {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}
