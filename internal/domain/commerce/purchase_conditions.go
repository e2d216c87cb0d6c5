package commerce

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseConditions struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:project_id" json:"projectId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (PurchaseConditions) TableName() string { return "purchase_conditions" }

func (p *PurchaseConditions) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

type PaymentStage struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PurchaseConditionsID uuid.UUID       `gorm:"type:uuid;not null;index;column:purchase_conditions_id" json:"purchaseConditionsId"`
	StageName            string          `gorm:"not null;column:stage_name" json:"stageName"`
	Percentage           decimal.Decimal `gorm:"type:numeric(5,2);not null;column:percentage" json:"percentage"`
	DueDescription       string          `gorm:"column:due_description" json:"dueDescription,omitempty"`
	SortOrder            int             `gorm:"not null;column:sort_order" json:"sortOrder"`
	CreatedAt            time.Time       `gorm:"not null" json:"createdAt"`
}

func (PaymentStage) TableName() string { return "payment_stage" }

func (p *PaymentStage) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

type AgentCommission struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PurchaseConditionsID uuid.UUID       `gorm:"type:uuid;not null;index;column:purchase_conditions_id" json:"purchaseConditionsId"`
	AgentType            string          `gorm:"not null;column:agent_type" json:"agentType"`
	Commission           decimal.Decimal `gorm:"type:numeric(5,2);not null;column:commission" json:"commission"`
	Description          string          `gorm:"column:description" json:"description,omitempty"`
	SortOrder            int             `gorm:"not null;column:sort_order" json:"sortOrder"`
	CreatedAt            time.Time       `gorm:"not null" json:"createdAt"`
}

func (AgentCommission) TableName() string { return "agent_commission" }

func (a *AgentCommission) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}

type CashbackBonus struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PurchaseConditionsID uuid.UUID       `gorm:"type:uuid;not null;index;column:purchase_conditions_id" json:"purchaseConditionsId"`
	BonusName            string          `gorm:"not null;column:bonus_name" json:"bonusName"`
	Amount               decimal.Decimal `gorm:"type:numeric(14,2);not null;column:amount" json:"amount"`
	Conditions           string          `gorm:"column:conditions" json:"conditions,omitempty"`
	SortOrder            int             `gorm:"not null;column:sort_order" json:"sortOrder"`
	CreatedAt            time.Time       `gorm:"not null" json:"createdAt"`
}

func (CashbackBonus) TableName() string { return "cashback_bonus" }

func (c *CashbackBonus) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

type AdditionalExpense struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PurchaseConditionsID uuid.UUID       `gorm:"type:uuid;not null;index;column:purchase_conditions_id" json:"purchaseConditionsId"`
	NameOfExpenses       string          `gorm:"not null;column:name_of_expenses" json:"nameOfExpenses"`
	CostOfExpenses       decimal.Decimal `gorm:"type:numeric(14,2);not null;column:cost_of_expenses" json:"costOfExpenses"`
	SortOrder            int             `gorm:"not null;column:sort_order" json:"sortOrder"`
	CreatedAt            time.Time       `gorm:"not null" json:"createdAt"`
}

func (AdditionalExpense) TableName() string { return "additional_expense" }

func (a *AdditionalExpense) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
