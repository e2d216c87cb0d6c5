package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAsUnwrapsClassifiedErrors(t *testing.T) {
	wrapped := fmt.Errorf("create currency: %w", Conflict("currency code already exists"))
	got := As(wrapped)
	if got.Status != http.StatusConflict || got.Code != CodeConflict {
		t.Fatalf("unexpected classification: %+v", got)
	}
	if got.Error() != "currency code already exists" {
		t.Fatalf("message: got=%q", got.Error())
	}
}

func TestAsHidesUnclassifiedErrors(t *testing.T) {
	got := As(errors.New("pq: connection refused"))
	if got.Status != http.StatusInternalServerError {
		t.Fatalf("status: want=500 got=%d", got.Status)
	}
	if got.Error() != "internal server error" {
		t.Fatalf("raw error leaked: %q", got.Error())
	}
}

func TestValidationCarriesFields(t *testing.T) {
	err := ValidationField("code", "is required")
	if err.Status != http.StatusBadRequest {
		t.Fatalf("status: want=400 got=%d", err.Status)
	}
	if err.Fields["code"] != "is required" {
		t.Fatalf("fields: %+v", err.Fields)
	}
}

func TestAsNil(t *testing.T) {
	if As(nil) != nil {
		t.Fatalf("As(nil) should be nil")
	}
}
