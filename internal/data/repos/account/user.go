package account

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type UserRepo interface {
	gateway.Gateway[types.User]
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error)
}

type userRepo struct {
	*gateway.Table[types.User]
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{Table: gateway.NewTable[types.User](db, baseLog.With("repo", "UserRepo"))}
}

func (r *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	return r.Find(ctx, tx, gateway.Where("email", strings.ToLower(strings.TrimSpace(email))))
}

type AssignmentRepo interface {
	IsAssigned(ctx context.Context, tx *gorm.DB, userID, projectID uuid.UUID) (bool, error)
	Assign(ctx context.Context, tx *gorm.DB, userID, projectID uuid.UUID) error
	Unassign(ctx context.Context, tx *gorm.DB, userID, projectID uuid.UUID) (bool, error)
	ListForProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.ProjectAssignment, error)
	DeleteForProjects(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) error
}

type assignmentRepo struct {
	table *gateway.Table[types.ProjectAssignment]
}

func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) AssignmentRepo {
	return &assignmentRepo{table: gateway.NewTable[types.ProjectAssignment](db, baseLog.With("repo", "AssignmentRepo"))}
}

func pair(userID, projectID uuid.UUID) gateway.Filter {
	return gateway.Filter{Eq: map[string]any{"user_id": userID, "project_id": projectID}}
}

func (r *assignmentRepo) IsAssigned(ctx context.Context, tx *gorm.DB, userID, projectID uuid.UUID) (bool, error) {
	return r.table.Exists(ctx, tx, pair(userID, projectID))
}

// Assign is idempotent.
func (r *assignmentRepo) Assign(ctx context.Context, tx *gorm.DB, userID, projectID uuid.UUID) error {
	row := &types.ProjectAssignment{UserID: userID, ProjectID: projectID}
	return r.table.Upsert(ctx, tx, []*types.ProjectAssignment{row}, []string{"user_id", "project_id"}, nil)
}

func (r *assignmentRepo) Unassign(ctx context.Context, tx *gorm.DB, userID, projectID uuid.UUID) (bool, error) {
	n, err := r.table.DeleteMany(ctx, tx, pair(userID, projectID))
	return n > 0, err
}

func (r *assignmentRepo) ListForProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.ProjectAssignment, error) {
	return r.table.FindMany(ctx, tx, gateway.Filter{Eq: map[string]any{"project_id": projectID}, Order: "created_at ASC"})
}

func (r *assignmentRepo) DeleteForProjects(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) error {
	if len(projectIDs) == 0 {
		return nil
	}
	_, err := r.table.DeleteMany(ctx, tx, gateway.Filter{In: map[string]any{"project_id": projectIDs}})
	return err
}
