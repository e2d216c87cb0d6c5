package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	types "github.com/yungbote/estatehub-backend/internal/domain"
)

func SeedDeveloper(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Developer {
	tb.Helper()
	d := &types.Developer{Name: name}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed developer: %v", err)
	}
	return d
}

func SeedProject(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string, developerID *uuid.UUID) *types.Project {
	tb.Helper()
	p := &types.Project{
		Slug:         slug,
		Name:         "Project " + slug,
		Description:  "Sea view residences",
		Status:       types.ProjectStatusActive,
		PriceFrom:    decimal.NewFromInt(150000),
		CurrencyCode: "USD",
		DeveloperID:  developerID,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return p
}

func SeedLocation(tb testing.TB, ctx context.Context, tx *gorm.DB, projectID uuid.UUID, city string) *types.Location {
	tb.Helper()
	lat, lng := 25.2048, 55.2708
	l := &types.Location{ProjectID: projectID, Country: "AE", City: city, Latitude: &lat, Longitude: &lng}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed location: %v", err)
	}
	return l
}

func SeedBuilding(tb testing.TB, ctx context.Context, tx *gorm.DB, projectID uuid.UUID, name string) *types.Building {
	tb.Helper()
	b := &types.Building{ProjectID: projectID, Name: name, Floors: 10}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed building: %v", err)
	}
	return b
}

func SeedUnit(tb testing.TB, ctx context.Context, tx *gorm.DB, projectID uuid.UUID, number string, bedrooms int) *types.Unit {
	tb.Helper()
	u := &types.Unit{
		Slug:      "unit-" + number + "-" + projectID.String()[:8],
		ProjectID: projectID,
		Number:    number,
		Status:    types.UnitStatusAvailable,
		Area:      decimal.NewFromInt(85),
		Price:     decimal.NewFromInt(250000),
		Bedrooms:  bedrooms,
		Bathrooms: 1,
		Floor:     3,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed unit: %v", err)
	}
	return u
}

func SeedCurrency(tb testing.TB, ctx context.Context, tx *gorm.DB, code string, base bool) *types.Currency {
	tb.Helper()
	c := &types.Currency{Code: code, Symbol: code, Name: code, Rate: decimal.NewFromInt(1), IsBaseCurrency: base}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed currency: %v", err)
	}
	return c
}

func SeedAmenity(tb testing.TB, ctx context.Context, tx *gorm.DB, code string) *types.Amenity {
	tb.Helper()
	a := &types.Amenity{Code: code, Name: code}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed amenity: %v", err)
	}
	return a
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email, role, password string) *types.User {
	tb.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash password: %v", err)
	}
	u := &types.User{Email: email, PasswordHash: string(hash), Name: "Test", Role: role}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedAssignment(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, projectID uuid.UUID) {
	tb.Helper()
	if err := tx.WithContext(ctx).Create(&types.ProjectAssignment{UserID: userID, ProjectID: projectID}).Error; err != nil {
		tb.Fatalf("seed assignment: %v", err)
	}
}
