package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type AmenityRepo interface {
	gateway.Gateway[types.Amenity]
	ListForProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.Amenity, error)
	ListForUnit(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) ([]*types.Amenity, error)
	ReplaceProjectLinks(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, amenityIDs []uuid.UUID) error
	ReplaceUnitLinks(ctx context.Context, tx *gorm.DB, unitID uuid.UUID, amenityIDs []uuid.UUID) error
	DeleteProjectLinks(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) error
	DeleteUnitLinks(ctx context.Context, tx *gorm.DB, unitIDs []uuid.UUID) error
}

type amenityRepo struct {
	*gateway.Table[types.Amenity]
	projectLinks *gateway.Table[types.ProjectAmenity]
	unitLinks    *gateway.Table[types.UnitAmenity]
}

func NewAmenityRepo(db *gorm.DB, baseLog *logger.Logger) AmenityRepo {
	repoLog := baseLog.With("repo", "AmenityRepo")
	return &amenityRepo{
		Table:        gateway.NewTable[types.Amenity](db, repoLog),
		projectLinks: gateway.NewTable[types.ProjectAmenity](db, repoLog),
		unitLinks:    gateway.NewTable[types.UnitAmenity](db, repoLog),
	}
}

func (r *amenityRepo) ListForProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.Amenity, error) {
	return r.FindMany(ctx, tx, gateway.Filter{
		Has:   []gateway.Exists{{Table: "project_amenity", ForeignKey: "amenity_id", Eq: map[string]any{"project_id": projectID}}},
		Order: "name ASC",
	})
}

func (r *amenityRepo) ListForUnit(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) ([]*types.Amenity, error) {
	return r.FindMany(ctx, tx, gateway.Filter{
		Has:   []gateway.Exists{{Table: "unit_amenity", ForeignKey: "amenity_id", Eq: map[string]any{"unit_id": unitID}}},
		Order: "name ASC",
	})
}

func (r *amenityRepo) ReplaceProjectLinks(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, amenityIDs []uuid.UUID) error {
	if _, err := r.projectLinks.DeleteMany(ctx, tx, gateway.Where("project_id", projectID)); err != nil {
		return err
	}
	links := make([]*types.ProjectAmenity, 0, len(amenityIDs))
	for _, id := range dedupe(amenityIDs) {
		links = append(links, &types.ProjectAmenity{ProjectID: projectID, AmenityID: id})
	}
	_, err := r.projectLinks.Create(ctx, tx, links)
	return err
}

func (r *amenityRepo) ReplaceUnitLinks(ctx context.Context, tx *gorm.DB, unitID uuid.UUID, amenityIDs []uuid.UUID) error {
	if _, err := r.unitLinks.DeleteMany(ctx, tx, gateway.Where("unit_id", unitID)); err != nil {
		return err
	}
	links := make([]*types.UnitAmenity, 0, len(amenityIDs))
	for _, id := range dedupe(amenityIDs) {
		links = append(links, &types.UnitAmenity{UnitID: unitID, AmenityID: id})
	}
	_, err := r.unitLinks.Create(ctx, tx, links)
	return err
}

func (r *amenityRepo) DeleteProjectLinks(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) error {
	_, err := r.projectLinks.DeleteMany(ctx, tx, gateway.Filter{In: map[string]any{"project_id": projectIDs}})
	return err
}

func (r *amenityRepo) DeleteUnitLinks(ctx context.Context, tx *gorm.DB, unitIDs []uuid.UUID) error {
	_, err := r.unitLinks.DeleteMany(ctx, tx, gateway.Filter{In: map[string]any{"unit_id": unitIDs}})
	return err
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
