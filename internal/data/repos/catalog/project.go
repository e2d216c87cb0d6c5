package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type ProjectRepo interface {
	gateway.Gateway[types.Project]
	GetByIDOrSlug(ctx context.Context, tx *gorm.DB, key string) (*types.Project, error)
	SlugExists(ctx context.Context, tx *gorm.DB, slug string) (bool, error)
}

type projectRepo struct {
	*gateway.Table[types.Project]
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	repoLog := baseLog.With("repo", "ProjectRepo")
	return &projectRepo{Table: gateway.NewTable[types.Project](db, repoLog), log: repoLog}
}

func (r *projectRepo) GetByIDOrSlug(ctx context.Context, tx *gorm.DB, key string) (*types.Project, error) {
	return r.Find(ctx, tx, idOrSlug(key))
}

func (r *projectRepo) SlugExists(ctx context.Context, tx *gorm.DB, slug string) (bool, error) {
	return r.Exists(ctx, tx, gateway.Where("slug", slug))
}

// idOrSlug treats a parseable UUID as an id and anything else as a slug.
func idOrSlug(key string) gateway.Filter {
	if id, err := uuid.Parse(key); err == nil {
		return gateway.ByID(id)
	}
	return gateway.Where("slug", key)
}
