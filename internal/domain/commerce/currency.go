package commerce

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// Currency is global reference data. Rate is expressed against the single base currency;
// the partial unique index keeps at most one row flagged as base.
type Currency struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Code           string          `gorm:"not null;uniqueIndex;column:code" json:"code"`
	Symbol         string          `gorm:"not null;column:symbol" json:"symbol"`
	Name           string          `gorm:"not null;column:name" json:"name"`
	Rate           decimal.Decimal `gorm:"type:numeric(18,6);not null;column:rate" json:"rate"`
	IsBaseCurrency bool            `gorm:"not null;index:idx_currency_single_base,unique,where:is_base_currency;column:is_base_currency" json:"isBaseCurrency"`
	CreatedAt      time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updatedAt"`
}

func (Currency) TableName() string { return "currency" }

func (c *Currency) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
