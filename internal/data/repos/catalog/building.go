package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type BuildingRepo interface {
	gateway.Gateway[types.Building]
	BelongsToProject(ctx context.Context, tx *gorm.DB, buildingID, projectID uuid.UUID) (bool, error)
}

type buildingRepo struct {
	*gateway.Table[types.Building]
}

func NewBuildingRepo(db *gorm.DB, baseLog *logger.Logger) BuildingRepo {
	return &buildingRepo{Table: gateway.NewTable[types.Building](db, baseLog.With("repo", "BuildingRepo"))}
}

func (r *buildingRepo) BelongsToProject(ctx context.Context, tx *gorm.DB, buildingID, projectID uuid.UUID) (bool, error) {
	return r.Exists(ctx, tx, gateway.Filter{Eq: map[string]any{"id": buildingID, "project_id": projectID}})
}

type FloorPlanRepo = gateway.Gateway[types.FloorPlan]

func NewFloorPlanRepo(db *gorm.DB, baseLog *logger.Logger) FloorPlanRepo {
	return gateway.NewTable[types.FloorPlan](db, baseLog.With("repo", "FloorPlanRepo"))
}

type FloorPlanAreaRepo = gateway.Gateway[types.FloorPlanArea]

func NewFloorPlanAreaRepo(db *gorm.DB, baseLog *logger.Logger) FloorPlanAreaRepo {
	return gateway.NewTable[types.FloorPlanArea](db, baseLog.With("repo", "FloorPlanAreaRepo"))
}

type LayoutRepo = gateway.Gateway[types.Layout]

func NewLayoutRepo(db *gorm.DB, baseLog *logger.Logger) LayoutRepo {
	return gateway.NewTable[types.Layout](db, baseLog.With("repo", "LayoutRepo"))
}
