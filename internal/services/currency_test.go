package services

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	"github.com/yungbote/estatehub-backend/internal/data/repos/testutil"
	types "github.com/yungbote/estatehub-backend/internal/domain"
)

func countBase(t *testing.T, f *fixture) int64 {
	t.Helper()
	n, err := f.repo.Currency.Count(f.ctx, nil, gateway.Where("is_base_currency", true))
	require.NoError(t, err)
	return n
}

func TestCurrencyCreateUppercasesAndMovesBase(t *testing.T) {
	f := newFixture(t)
	svc := NewCurrencyService(f.db, f.log, f.repo)
	eur := testutil.SeedCurrency(t, f.ctx, f.db, "EUR", true)

	c, err := svc.Create(f.ctx, CurrencyInput{
		Code:           "usd",
		Symbol:         "$",
		Name:           "US Dollar",
		Rate:           decimal.NewFromInt(1),
		IsBaseCurrency: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", c.Code)

	stored, err := f.repo.Currency.GetByCode(f.ctx, nil, "USD")
	require.NoError(t, err)
	assert.True(t, stored.IsBaseCurrency)

	prev, err := f.repo.Currency.Find(f.ctx, nil, gateway.ByID(eur.ID))
	require.NoError(t, err)
	assert.False(t, prev.IsBaseCurrency)
}

func TestCurrencyBaseStaysExclusive(t *testing.T) {
	f := newFixture(t)
	svc := NewCurrencyService(f.db, f.log, f.repo)

	steps := []struct {
		code string
		base bool
	}{
		{"usd", true},
		{"eur", false},
		{"aed", true},
		{"gbp", true},
		{"rub", false},
	}
	created := map[string]*types.Currency{}
	for _, st := range steps {
		c, err := svc.Create(f.ctx, CurrencyInput{Code: st.code, Symbol: st.code, Name: st.code, Rate: decimal.NewFromFloat(1.5), IsBaseCurrency: st.base})
		require.NoError(t, err)
		created[c.Code] = c
		assert.LessOrEqual(t, countBase(t, f), int64(1), "after create %s", st.code)
	}

	_, err := svc.Update(f.ctx, created["EUR"].ID, CurrencyInput{Code: "EUR", Symbol: "€", Name: "Euro", Rate: decimal.NewFromFloat(0.9), IsBaseCurrency: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), countBase(t, f))

	base, err := f.repo.Currency.GetBase(f.ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "EUR", base.Code)
}

func TestCurrencyDuplicateCodeConflicts(t *testing.T) {
	f := newFixture(t)
	svc := NewCurrencyService(f.db, f.log, f.repo)
	testutil.SeedCurrency(t, f.ctx, f.db, "USD", false)

	_, err := svc.Create(f.ctx, CurrencyInput{Code: " usd ", Symbol: "$", Name: "Dollar", Rate: decimal.NewFromInt(1)})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestCurrencyValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewCurrencyService(f.db, f.log, f.repo)

	_, err := svc.Create(f.ctx, CurrencyInput{Code: "US", Symbol: "", Name: "x", Rate: decimal.Zero})
	require.Error(t, err)
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "code")
	assert.Contains(t, fields, "symbol")
	assert.Contains(t, fields, "rate")

	n, err := f.repo.Currency.Count(f.ctx, nil, gateway.Filter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCurrencyDeleteUnknown(t *testing.T) {
	f := newFixture(t)
	svc := NewCurrencyService(f.db, f.log, f.repo)
	c := testutil.SeedCurrency(t, f.ctx, f.db, "USD", false)

	require.NoError(t, svc.Delete(f.ctx, c.ID))
	err := svc.Delete(f.ctx, c.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
