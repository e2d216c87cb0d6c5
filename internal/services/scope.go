package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/estatehub-backend/internal/data/repos"
	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

// ScopeResolver maps route targets to the projects they belong to so the
// access gate can check "assigned" capabilities before a handler runs.
// Missing targets resolve to no projects and the handler reports 404.
type ScopeResolver interface {
	Project(ctx context.Context, projectKey string) ([]uuid.UUID, error)
	Unit(ctx context.Context, unitKey string) ([]uuid.UUID, error)
	Units(ctx context.Context, unitIDs []uuid.UUID) ([]uuid.UUID, error)
	Building(ctx context.Context, buildingID uuid.UUID) ([]uuid.UUID, error)
}

type scopeResolver struct {
	log   *logger.Logger
	repos repos.Set
}

func NewScopeResolver(log *logger.Logger, set repos.Set) ScopeResolver {
	return &scopeResolver{log: log.With("service", "ScopeResolver"), repos: set}
}

func (s *scopeResolver) Project(ctx context.Context, projectKey string) ([]uuid.UUID, error) {
	p, err := s.repos.Project.GetByIDOrSlug(ctx, nil, strings.TrimSpace(projectKey))
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(s.log, err, "project", "scope", projectKey)
	}
	return []uuid.UUID{p.ID}, nil
}

func (s *scopeResolver) Unit(ctx context.Context, unitKey string) ([]uuid.UUID, error) {
	u, err := s.repos.Unit.GetByIDOrSlug(ctx, nil, strings.TrimSpace(unitKey))
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(s.log, err, "unit", "scope", unitKey)
	}
	return []uuid.UUID{u.ProjectID}, nil
}

func (s *scopeResolver) Units(ctx context.Context, unitIDs []uuid.UUID) ([]uuid.UUID, error) {
	unitIDs = dedupeIDs(unitIDs)
	if len(unitIDs) == 0 {
		return nil, nil
	}
	units, err := s.repos.Unit.FindMany(ctx, nil, gateway.ByIDs(unitIDs))
	if err != nil {
		return nil, classify(s.log, err, "unit", "scope", "")
	}
	return dedupeIDs(idsOf(units, func(u *types.Unit) uuid.UUID { return u.ProjectID })), nil
}

func (s *scopeResolver) Building(ctx context.Context, buildingID uuid.UUID) ([]uuid.UUID, error) {
	b, err := s.repos.Building.Find(ctx, nil, gateway.ByID(buildingID))
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(s.log, err, "building", "scope", buildingID)
	}
	return []uuid.UUID{b.ProjectID}, nil
}
