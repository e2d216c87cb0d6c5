package access

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

// Principal is the authenticated caller as resolved from the session.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

type AssignmentLookup interface {
	IsAssigned(ctx context.Context, tx *gorm.DB, userID, projectID uuid.UUID) (bool, error)
}

type Gate struct {
	log         *logger.Logger
	table       Table
	assignments AssignmentLookup
}

func NewGate(log *logger.Logger, table Table, assignments AssignmentLookup) *Gate {
	return &Gate{log: log.With("component", "AccessGate"), table: table, assignments: assignments}
}

// Authorize decides whether p may perform act on res. projectID scopes the
// request for the "assigned" capability; uuid.Nil means the route targets no
// specific project, which "assigned" never satisfies.
func (g *Gate) Authorize(ctx context.Context, p *Principal, res Resource, act Action, projectID uuid.UUID) error {
	if p == nil || p.UserID == uuid.Nil {
		return apierr.Unauthorized()
	}
	switch g.table.Capability(p.Role, res, act) {
	case CapAll:
		return nil
	case CapAssigned:
		if projectID == uuid.Nil || g.assignments == nil {
			return apierr.Forbidden()
		}
		ok, err := g.assignments.IsAssigned(ctx, nil, p.UserID, projectID)
		if err != nil {
			g.log.Error("assignment lookup failed", "user_id", p.UserID, "project_id", projectID, "error", err)
			return fmt.Errorf("assignment lookup: %w", err)
		}
		if !ok {
			return apierr.Forbidden()
		}
		return nil
	default:
		return apierr.Forbidden()
	}
}

// Can reports the raw capability, for callers that render permissions.
func (g *Gate) Can(role Role, res Resource, act Action) Capability {
	return g.table.Capability(role, res, act)
}
