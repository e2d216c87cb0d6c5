package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/repos"
	"github.com/yungbote/estatehub-backend/internal/data/repos/testutil"
	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type fixture struct {
	ctx  context.Context
	db   *gorm.DB
	log  *logger.Logger
	repo repos.Set
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return &fixture{ctx: context.Background(), db: db, log: log, repo: repos.NewSet(db, log)}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *apierr.Error, got %T: %v", err, err)
	}
	return apiErr.Status
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected validation error, got %v", err)
	}
	return apiErr.Fields
}
