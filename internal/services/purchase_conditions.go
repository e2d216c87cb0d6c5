package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/repos"
	"github.com/yungbote/estatehub-backend/internal/data/repos/commerce"
	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/pkg/validate"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type PaymentStageInput struct {
	StageName      string          `json:"stageName" validate:"required,max=200"`
	Percentage     decimal.Decimal `json:"percentage" validate:"gte=0,lte=100"`
	DueDescription string          `json:"dueDescription" validate:"max=500"`
}

type AgentCommissionInput struct {
	AgentType   string          `json:"agentType" validate:"required,max=100"`
	Commission  decimal.Decimal `json:"commission" validate:"gte=0,lte=100"`
	Description string          `json:"description" validate:"max=500"`
}

type CashbackBonusInput struct {
	BonusName  string          `json:"bonusName" validate:"required,max=200"`
	Amount     decimal.Decimal `json:"amount" validate:"gte=0"`
	Conditions string          `json:"conditions" validate:"max=1000"`
}

type AdditionalExpenseInput struct {
	NameOfExpenses string          `json:"nameOfExpenses" validate:"required,max=200"`
	CostOfExpenses decimal.Decimal `json:"costOfExpenses" validate:"gte=0"`
}

// The replace inputs hold their list by pointer so an omitted key is rejected
// rather than read as "clear everything". An explicit [] clears the list.

type PaymentStagesInput struct {
	Stages *[]PaymentStageInput `json:"stages" validate:"required,dive"`
}

type AgentCommissionsInput struct {
	Commissions *[]AgentCommissionInput `json:"commissions" validate:"required,dive"`
}

type CashbackBonusesInput struct {
	Bonuses *[]CashbackBonusInput `json:"bonuses" validate:"required,dive"`
}

type AdditionalExpensesInput struct {
	Expenses *[]AdditionalExpenseInput `json:"expenses" validate:"required,dive"`
}

func items[T any](list *[]T) []T {
	if list == nil {
		return nil
	}
	return *list
}

// PurchaseConditionsService reads and replace-all writes the four lists
// hanging off a project's purchase conditions. A write deletes the old list
// and inserts the new one in a single transaction.
type PurchaseConditionsService interface {
	PaymentStages(ctx context.Context, projectKey string) ([]*types.PaymentStage, error)
	AgentCommissions(ctx context.Context, projectKey string) ([]*types.AgentCommission, error)
	CashbackBonuses(ctx context.Context, projectKey string) ([]*types.CashbackBonus, error)
	AdditionalExpenses(ctx context.Context, projectKey string) ([]*types.AdditionalExpense, error)

	ReplacePaymentStages(ctx context.Context, projectKey string, in PaymentStagesInput) ([]*types.PaymentStage, error)
	ReplaceAgentCommissions(ctx context.Context, projectKey string, in AgentCommissionsInput) ([]*types.AgentCommission, error)
	ReplaceCashbackBonuses(ctx context.Context, projectKey string, in CashbackBonusesInput) ([]*types.CashbackBonus, error)
	ReplaceAdditionalExpenses(ctx context.Context, projectKey string, in AdditionalExpensesInput) ([]*types.AdditionalExpense, error)
}

type purchaseConditionsService struct {
	db    *gorm.DB
	log   *logger.Logger
	repos repos.Set
}

func NewPurchaseConditionsService(db *gorm.DB, log *logger.Logger, set repos.Set) PurchaseConditionsService {
	return &purchaseConditionsService{
		db:    db,
		log:   log.With("service", "PurchaseConditionsService"),
		repos: set,
	}
}

func (s *purchaseConditionsService) PaymentStages(ctx context.Context, projectKey string) ([]*types.PaymentStage, error) {
	return listChildren(ctx, s, projectKey, "payment_stages", s.repos.PaymentStage)
}

func (s *purchaseConditionsService) AgentCommissions(ctx context.Context, projectKey string) ([]*types.AgentCommission, error) {
	return listChildren(ctx, s, projectKey, "agent_commissions", s.repos.AgentCommission)
}

func (s *purchaseConditionsService) CashbackBonuses(ctx context.Context, projectKey string) ([]*types.CashbackBonus, error) {
	return listChildren(ctx, s, projectKey, "cashback_bonuses", s.repos.CashbackBonus)
}

func (s *purchaseConditionsService) AdditionalExpenses(ctx context.Context, projectKey string) ([]*types.AdditionalExpense, error) {
	return listChildren(ctx, s, projectKey, "additional_expenses", s.repos.AdditionalExpense)
}

func (s *purchaseConditionsService) ReplacePaymentStages(ctx context.Context, projectKey string, in PaymentStagesInput) ([]*types.PaymentStage, error) {
	list := items(in.Stages)
	for i := range list {
		list[i].StageName = strings.TrimSpace(list[i].StageName)
	}
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	return replaceChildren(ctx, s, projectKey, "payment_stages", s.repos.PaymentStage, func(pcID uuid.UUID) []*types.PaymentStage {
		rows := make([]*types.PaymentStage, 0, len(list))
		for i, st := range list {
			rows = append(rows, &types.PaymentStage{
				PurchaseConditionsID: pcID,
				StageName:            st.StageName,
				Percentage:           st.Percentage,
				DueDescription:       strings.TrimSpace(st.DueDescription),
				SortOrder:            i,
			})
		}
		return rows
	})
}

func (s *purchaseConditionsService) ReplaceAgentCommissions(ctx context.Context, projectKey string, in AgentCommissionsInput) ([]*types.AgentCommission, error) {
	list := items(in.Commissions)
	for i := range list {
		list[i].AgentType = strings.TrimSpace(list[i].AgentType)
	}
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	return replaceChildren(ctx, s, projectKey, "agent_commissions", s.repos.AgentCommission, func(pcID uuid.UUID) []*types.AgentCommission {
		rows := make([]*types.AgentCommission, 0, len(list))
		for i, c := range list {
			rows = append(rows, &types.AgentCommission{
				PurchaseConditionsID: pcID,
				AgentType:            c.AgentType,
				Commission:           c.Commission,
				Description:          strings.TrimSpace(c.Description),
				SortOrder:            i,
			})
		}
		return rows
	})
}

func (s *purchaseConditionsService) ReplaceCashbackBonuses(ctx context.Context, projectKey string, in CashbackBonusesInput) ([]*types.CashbackBonus, error) {
	list := items(in.Bonuses)
	for i := range list {
		list[i].BonusName = strings.TrimSpace(list[i].BonusName)
	}
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	return replaceChildren(ctx, s, projectKey, "cashback_bonuses", s.repos.CashbackBonus, func(pcID uuid.UUID) []*types.CashbackBonus {
		rows := make([]*types.CashbackBonus, 0, len(list))
		for i, b := range list {
			rows = append(rows, &types.CashbackBonus{
				PurchaseConditionsID: pcID,
				BonusName:            b.BonusName,
				Amount:               b.Amount,
				Conditions:           strings.TrimSpace(b.Conditions),
				SortOrder:            i,
			})
		}
		return rows
	})
}

func (s *purchaseConditionsService) ReplaceAdditionalExpenses(ctx context.Context, projectKey string, in AdditionalExpensesInput) ([]*types.AdditionalExpense, error) {
	list := items(in.Expenses)
	for i := range list {
		list[i].NameOfExpenses = strings.TrimSpace(list[i].NameOfExpenses)
	}
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	return replaceChildren(ctx, s, projectKey, "additional_expenses", s.repos.AdditionalExpense, func(pcID uuid.UUID) []*types.AdditionalExpense {
		rows := make([]*types.AdditionalExpense, 0, len(list))
		for i, e := range list {
			rows = append(rows, &types.AdditionalExpense{
				PurchaseConditionsID: pcID,
				NameOfExpenses:       e.NameOfExpenses,
				CostOfExpenses:       e.CostOfExpenses,
				SortOrder:            i,
			})
		}
		return rows
	})
}

func listChildren[T gateway.Model](ctx context.Context, s *purchaseConditionsService, projectKey, entity string, repo commerce.ChildRepo[T]) ([]*T, error) {
	p, err := s.repos.Project.GetByIDOrSlug(ctx, nil, strings.TrimSpace(projectKey))
	if err != nil {
		return nil, classify(s.log, err, "project", "get_"+entity, projectKey)
	}
	pc, err := s.repos.PurchaseConditions.GetByProject(ctx, nil, p.ID)
	if isNotFound(err) {
		return []*T{}, nil
	}
	if err != nil {
		return nil, classify(s.log, err, "purchase_conditions", "get_"+entity, p.ID)
	}
	rows, err := repo.ListFor(ctx, nil, pc.ID)
	if err != nil {
		return nil, classify(s.log, err, entity, "list", pc.ID)
	}
	return rows, nil
}

// replaceChildren ensures the parent row, drops the existing list and inserts
// build's rows. Any failure rolls the whole swap back.
func replaceChildren[T gateway.Model](ctx context.Context, s *purchaseConditionsService, projectKey, entity string, repo commerce.ChildRepo[T], build func(pcID uuid.UUID) []*T) ([]*T, error) {
	var out []*T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := s.repos.Project.GetByIDOrSlug(ctx, tx, strings.TrimSpace(projectKey))
		if err != nil {
			return err
		}
		pc, err := s.repos.PurchaseConditions.Ensure(ctx, tx, p.ID)
		if err != nil {
			return err
		}
		if err := repo.DeleteFor(ctx, tx, pc.ID); err != nil {
			return err
		}
		if _, err := repo.Create(ctx, tx, build(pc.ID)); err != nil {
			return err
		}
		out, err = repo.ListFor(ctx, tx, pc.ID)
		return err
	})
	if err != nil {
		return nil, classify(s.log, err, "project", "replace_"+entity, projectKey)
	}
	s.log.Info("purchase conditions replaced", "project", projectKey, "list", entity, "count", len(out))
	return out, nil
}
