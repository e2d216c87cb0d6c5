package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	pkgerrors "github.com/yungbote/estatehub-backend/internal/pkg/errors"
	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

// classify turns gateway sentinels into API errors. Anything it cannot
// classify is logged with entity, op and id and surfaces as an opaque 500.
func classify(log *logger.Logger, err error, entity, op string, id any) error {
	if err == nil {
		return nil
	}
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, pkgerrors.ErrNotFound):
		return apierr.NotFound(entity)
	case errors.Is(err, pkgerrors.ErrConflict):
		return apierr.Conflict(fmt.Sprintf("%s conflicts with an existing record", entity))
	}
	log.Error("operation failed", "entity", entity, "op", op, "id", fmt.Sprint(id), "error", err)
	return apierr.Server()
}

func isNotFound(err error) bool {
	return errors.Is(err, pkgerrors.ErrNotFound)
}

// parseID rejects anything that is not a UUID with a field-level 400.
func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apierr.ValidationField(field, "must be a valid UUID")
	}
	return id, nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func idsOf[T any](rows []*T, id func(*T) uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		out = append(out, id(r))
	}
	return out
}
