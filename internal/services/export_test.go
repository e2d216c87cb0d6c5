package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/estatehub-backend/internal/data/repos/testutil"
	types "github.com/yungbote/estatehub-backend/internal/domain"
)

func TestExportUnitsCSV(t *testing.T) {
	f := newFixture(t)
	svc := NewExportService(f.log, f.repo, "en")
	p := testutil.SeedProject(t, f.ctx, f.db, "export-me", nil)
	b := testutil.SeedBuilding(t, f.ctx, f.db, p.ID, "Tower A")
	u := testutil.SeedUnit(t, f.ctx, f.db, p.ID, "201", 2)
	require.NoError(t, f.db.Model(&types.Unit{}).Where("id = ?", u.ID).Updates(map[string]any{"building_id": b.ID, "currency_code": "USD"}).Error)
	testutil.SeedUnit(t, f.ctx, f.db, p.ID, "101", 1)

	var buf bytes.Buffer
	name, err := svc.ExportUnits(f.ctx, p.ID.String(), &buf)
	require.NoError(t, err)
	assert.Equal(t, "export-me", name)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, unitExportHeader, rows[0])
	assert.Equal(t, "101", rows[1][2])
	assert.Equal(t, "201", rows[2][2])
	assert.Equal(t, "Tower A", rows[2][3])
	assert.Equal(t, "250000.00", rows[2][9])
	assert.Equal(t, "USD 250,000", rows[2][11])
}
