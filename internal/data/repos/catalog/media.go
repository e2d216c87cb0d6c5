package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type MediaRepo interface {
	gateway.Gateway[types.Media]
	ListForOwner(ctx context.Context, tx *gorm.DB, ownerType types.OwnerType, ownerID uuid.UUID) ([]*types.Media, error)
	DeleteForOwners(ctx context.Context, tx *gorm.DB, ownerType types.OwnerType, ownerIDs []uuid.UUID) error
}

type mediaRepo struct {
	*gateway.Table[types.Media]
}

func NewMediaRepo(db *gorm.DB, baseLog *logger.Logger) MediaRepo {
	return &mediaRepo{Table: gateway.NewTable[types.Media](db, baseLog.With("repo", "MediaRepo"))}
}

func (r *mediaRepo) ListForOwner(ctx context.Context, tx *gorm.DB, ownerType types.OwnerType, ownerID uuid.UUID) ([]*types.Media, error) {
	return r.FindMany(ctx, tx, gateway.Filter{
		Eq:    map[string]any{"owner_type": ownerType, "owner_id": ownerID},
		Order: "sort_order ASC, created_at ASC",
	})
}

func (r *mediaRepo) DeleteForOwners(ctx context.Context, tx *gorm.DB, ownerType types.OwnerType, ownerIDs []uuid.UUID) error {
	_, err := r.DeleteMany(ctx, tx, gateway.Filter{
		Eq: map[string]any{"owner_type": ownerType},
		In: map[string]any{"owner_id": ownerIDs},
	})
	return err
}

type TranslationRepo interface {
	gateway.Gateway[types.Translation]
	ListForOwner(ctx context.Context, tx *gorm.DB, ownerType types.OwnerType, ownerID uuid.UUID) ([]*types.Translation, error)
	ReplaceForOwner(ctx context.Context, tx *gorm.DB, ownerType types.OwnerType, ownerID uuid.UUID, rows []*types.Translation) error
	DeleteForOwners(ctx context.Context, tx *gorm.DB, ownerType types.OwnerType, ownerIDs []uuid.UUID) error
}

type translationRepo struct {
	*gateway.Table[types.Translation]
}

func NewTranslationRepo(db *gorm.DB, baseLog *logger.Logger) TranslationRepo {
	return &translationRepo{Table: gateway.NewTable[types.Translation](db, baseLog.With("repo", "TranslationRepo"))}
}

func (r *translationRepo) ListForOwner(ctx context.Context, tx *gorm.DB, ownerType types.OwnerType, ownerID uuid.UUID) ([]*types.Translation, error) {
	return r.FindMany(ctx, tx, gateway.Filter{
		Eq:    map[string]any{"owner_type": ownerType, "owner_id": ownerID},
		Order: "language ASC",
	})
}

func (r *translationRepo) ReplaceForOwner(ctx context.Context, tx *gorm.DB, ownerType types.OwnerType, ownerID uuid.UUID, rows []*types.Translation) error {
	if _, err := r.DeleteMany(ctx, tx, gateway.Filter{Eq: map[string]any{"owner_type": ownerType, "owner_id": ownerID}}); err != nil {
		return err
	}
	for _, t := range rows {
		t.OwnerType = ownerType
		t.OwnerID = ownerID
	}
	_, err := r.Create(ctx, tx, rows)
	return err
}

func (r *translationRepo) DeleteForOwners(ctx context.Context, tx *gorm.DB, ownerType types.OwnerType, ownerIDs []uuid.UUID) error {
	_, err := r.DeleteMany(ctx, tx, gateway.Filter{
		Eq: map[string]any{"owner_type": ownerType},
		In: map[string]any{"owner_id": ownerIDs},
	})
	return err
}
