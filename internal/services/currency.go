package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/repos"
	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/pkg/validate"
	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type CurrencyInput struct {
	Code           string          `json:"code" validate:"required,len=3,alpha"`
	Symbol         string          `json:"symbol" validate:"required,max=8"`
	Name           string          `json:"name" validate:"required,max=100"`
	Rate           decimal.Decimal `json:"rate" validate:"gt=0"`
	IsBaseCurrency bool            `json:"isBaseCurrency"`
}

type CurrencyService interface {
	List(ctx context.Context) ([]*types.Currency, error)
	Create(ctx context.Context, in CurrencyInput) (*types.Currency, error)
	Update(ctx context.Context, id uuid.UUID, in CurrencyInput) (*types.Currency, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type currencyService struct {
	db    *gorm.DB
	log   *logger.Logger
	repos repos.Set
}

func NewCurrencyService(db *gorm.DB, log *logger.Logger, set repos.Set) CurrencyService {
	return &currencyService{db: db, log: log.With("service", "CurrencyService"), repos: set}
}

func (s *currencyService) List(ctx context.Context) ([]*types.Currency, error) {
	rows, err := s.repos.Currency.FindMany(ctx, nil, gateway.Filter{Order: "is_base_currency DESC, code ASC"})
	if err != nil {
		return nil, classify(s.log, err, "currency", "list", "")
	}
	return rows, nil
}

func (s *currencyService) Create(ctx context.Context, in CurrencyInput) (*types.Currency, error) {
	if err := normalizeCurrency(&in); err != nil {
		return nil, err
	}
	c := &types.Currency{}
	applyCurrencyInput(c, in)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.repos.Currency.Exists(ctx, tx, gateway.Where("code", c.Code))
		if err != nil {
			return err
		}
		if taken {
			return apierr.Conflict("currency code already exists")
		}
		if c.IsBaseCurrency {
			if err := s.repos.Currency.ClearBase(ctx, tx); err != nil {
				return err
			}
		}
		_, err = s.repos.Currency.Create(ctx, tx, []*types.Currency{c})
		return err
	})
	if err != nil {
		return nil, classify(s.log, err, "currency", "create", in.Code)
	}
	s.log.Info("currency created", "code", c.Code, "base", c.IsBaseCurrency)
	return c, nil
}

func (s *currencyService) Update(ctx context.Context, id uuid.UUID, in CurrencyInput) (*types.Currency, error) {
	if err := normalizeCurrency(&in); err != nil {
		return nil, err
	}
	var c *types.Currency
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.repos.Currency.Find(ctx, tx, gateway.ByID(id))
		if err != nil {
			return err
		}
		if found.Code != in.Code {
			taken, err := s.repos.Currency.Exists(ctx, tx, gateway.Where("code", in.Code))
			if err != nil {
				return err
			}
			if taken {
				return apierr.Conflict("currency code already exists")
			}
		}
		if in.IsBaseCurrency {
			if err := s.repos.Currency.ClearBase(ctx, tx); err != nil {
				return err
			}
		}
		applyCurrencyInput(found, in)
		if err := s.repos.Currency.Update(ctx, tx, found); err != nil {
			return err
		}
		c = found
		return nil
	})
	if err != nil {
		return nil, classify(s.log, err, "currency", "update", id)
	}
	return c, nil
}

func (s *currencyService) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.repos.Currency.DeleteMany(ctx, nil, gateway.ByID(id))
	if err != nil {
		return classify(s.log, err, "currency", "delete", id)
	}
	if n == 0 {
		return apierr.NotFound("currency")
	}
	return nil
}

func normalizeCurrency(in *CurrencyInput) error {
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	in.Symbol = strings.TrimSpace(in.Symbol)
	in.Name = strings.TrimSpace(in.Name)
	return validate.Struct(in)
}

func applyCurrencyInput(c *types.Currency, in CurrencyInput) {
	c.Code = in.Code
	c.Symbol = in.Symbol
	c.Name = in.Name
	c.Rate = in.Rate
	c.IsBaseCurrency = in.IsBaseCurrency
}
