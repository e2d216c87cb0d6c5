package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/estatehub-backend/internal/access"
	"github.com/yungbote/estatehub-backend/internal/data/repos"
	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type AssignmentInput struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
}

type AssignmentService interface {
	List(ctx context.Context, projectKey string) ([]*types.ProjectAssignment, error)
	Assign(ctx context.Context, projectKey string, userID uuid.UUID) error
	Unassign(ctx context.Context, projectKey string, userID uuid.UUID) error
}

type assignmentService struct {
	log   *logger.Logger
	repos repos.Set
}

func NewAssignmentService(log *logger.Logger, set repos.Set) AssignmentService {
	return &assignmentService{log: log.With("service", "AssignmentService"), repos: set}
}

func (s *assignmentService) List(ctx context.Context, projectKey string) ([]*types.ProjectAssignment, error) {
	p, err := s.repos.Project.GetByIDOrSlug(ctx, nil, strings.TrimSpace(projectKey))
	if err != nil {
		return nil, classify(s.log, err, "project", "list_assignments", projectKey)
	}
	rows, err := s.repos.Assignment.ListForProject(ctx, nil, p.ID)
	if err != nil {
		return nil, classify(s.log, err, "assignment", "list", p.ID)
	}
	return rows, nil
}

// Assign links a MANAGER or AGENT to the project. Other roles gain nothing
// from an assignment and are rejected.
func (s *assignmentService) Assign(ctx context.Context, projectKey string, userID uuid.UUID) error {
	p, err := s.repos.Project.GetByIDOrSlug(ctx, nil, strings.TrimSpace(projectKey))
	if err != nil {
		return classify(s.log, err, "project", "assign", projectKey)
	}
	u, err := s.repos.User.Find(ctx, nil, gateway.ByID(userID))
	if isNotFound(err) {
		return apierr.ValidationField("userId", "unknown user")
	}
	if err != nil {
		return classify(s.log, err, "user", "assign", userID)
	}
	role, _ := access.ParseRole(u.Role)
	if role != access.RoleManager && role != access.RoleAgent {
		return apierr.ValidationField("userId", "only MANAGER and AGENT users can be assigned")
	}
	if err := s.repos.Assignment.Assign(ctx, nil, u.ID, p.ID); err != nil {
		return classify(s.log, err, "assignment", "create", p.ID)
	}
	s.log.Info("user assigned", "user_id", u.ID, "project_id", p.ID)
	return nil
}

func (s *assignmentService) Unassign(ctx context.Context, projectKey string, userID uuid.UUID) error {
	p, err := s.repos.Project.GetByIDOrSlug(ctx, nil, strings.TrimSpace(projectKey))
	if err != nil {
		return classify(s.log, err, "project", "unassign", projectKey)
	}
	removed, err := s.repos.Assignment.Unassign(ctx, nil, userID, p.ID)
	if err != nil {
		return classify(s.log, err, "assignment", "delete", p.ID)
	}
	if !removed {
		return apierr.NotFound("assignment")
	}
	return nil
}
