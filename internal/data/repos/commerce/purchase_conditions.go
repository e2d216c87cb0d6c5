package commerce

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type PurchaseConditionsRepo interface {
	gateway.Gateway[types.PurchaseConditions]
	GetByProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.PurchaseConditions, error)
	// Ensure returns the project's purchase conditions row, creating it if
	// missing. The row stays locked until tx ends, so concurrent replaces of
	// one project's lists run one at a time.
	Ensure(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.PurchaseConditions, error)
}

type purchaseConditionsRepo struct {
	*gateway.Table[types.PurchaseConditions]
}

func NewPurchaseConditionsRepo(db *gorm.DB, baseLog *logger.Logger) PurchaseConditionsRepo {
	return &purchaseConditionsRepo{
		Table: gateway.NewTable[types.PurchaseConditions](db, baseLog.With("repo", "PurchaseConditionsRepo")),
	}
}

func (r *purchaseConditionsRepo) GetByProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.PurchaseConditions, error) {
	return r.Find(ctx, tx, gateway.Where("project_id", projectID))
}

func (r *purchaseConditionsRepo) Ensure(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.PurchaseConditions, error) {
	row := &types.PurchaseConditions{ProjectID: projectID}
	if err := r.Upsert(ctx, tx, []*types.PurchaseConditions{row}, []string{"project_id"}, nil); err != nil {
		return nil, err
	}
	return r.Find(ctx, tx, gateway.Filter{Eq: map[string]any{"project_id": projectID}, ForUpdate: true})
}

// ChildRepo covers the four list-valued children of PurchaseConditions. Each
// list is scoped by purchase_conditions_id and ordered by sort_order.
type ChildRepo[T gateway.Model] interface {
	gateway.Gateway[T]
	ListFor(ctx context.Context, tx *gorm.DB, purchaseConditionsID uuid.UUID) ([]*T, error)
	DeleteFor(ctx context.Context, tx *gorm.DB, purchaseConditionsIDs ...uuid.UUID) error
}

type childRepo[T gateway.Model] struct {
	*gateway.Table[T]
}

func newChildRepo[T gateway.Model](db *gorm.DB, log *logger.Logger) ChildRepo[T] {
	return &childRepo[T]{Table: gateway.NewTable[T](db, log)}
}

func (r *childRepo[T]) ListFor(ctx context.Context, tx *gorm.DB, purchaseConditionsID uuid.UUID) ([]*T, error) {
	return r.FindMany(ctx, tx, gateway.Filter{
		Eq:    map[string]any{"purchase_conditions_id": purchaseConditionsID},
		Order: "sort_order ASC, created_at ASC",
	})
}

func (r *childRepo[T]) DeleteFor(ctx context.Context, tx *gorm.DB, purchaseConditionsIDs ...uuid.UUID) error {
	if len(purchaseConditionsIDs) == 0 {
		return nil
	}
	_, err := r.DeleteMany(ctx, tx, gateway.Filter{In: map[string]any{"purchase_conditions_id": purchaseConditionsIDs}})
	return err
}

type (
	PaymentStageRepo      = ChildRepo[types.PaymentStage]
	AgentCommissionRepo   = ChildRepo[types.AgentCommission]
	CashbackBonusRepo     = ChildRepo[types.CashbackBonus]
	AdditionalExpenseRepo = ChildRepo[types.AdditionalExpense]
)

func NewPaymentStageRepo(db *gorm.DB, baseLog *logger.Logger) PaymentStageRepo {
	return newChildRepo[types.PaymentStage](db, baseLog.With("repo", "PaymentStageRepo"))
}

func NewAgentCommissionRepo(db *gorm.DB, baseLog *logger.Logger) AgentCommissionRepo {
	return newChildRepo[types.AgentCommission](db, baseLog.With("repo", "AgentCommissionRepo"))
}

func NewCashbackBonusRepo(db *gorm.DB, baseLog *logger.Logger) CashbackBonusRepo {
	return newChildRepo[types.CashbackBonus](db, baseLog.With("repo", "CashbackBonusRepo"))
}

func NewAdditionalExpenseRepo(db *gorm.DB, baseLog *logger.Logger) AdditionalExpenseRepo {
	return newChildRepo[types.AdditionalExpense](db, baseLog.With("repo", "AdditionalExpenseRepo"))
}
