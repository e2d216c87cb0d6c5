package services

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/estatehub-backend/internal/data/repos"
	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/pkg/pricefmt"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

var unitExportHeader = []string{
	"id", "slug", "number", "building", "status", "floor", "bedrooms", "bathrooms",
	"area", "price", "currency", "formatted_price",
}

type ExportService interface {
	// ExportUnits writes the project's units as CSV and returns the project
	// slug for naming the download.
	ExportUnits(ctx context.Context, projectKey string, w io.Writer) (string, error)
}

type exportService struct {
	log    *logger.Logger
	repos  repos.Set
	locale string
}

func NewExportService(log *logger.Logger, set repos.Set, locale string) ExportService {
	return &exportService{log: log.With("service", "ExportService"), repos: set, locale: locale}
}

func (s *exportService) ExportUnits(ctx context.Context, projectKey string, w io.Writer) (string, error) {
	p, err := s.repos.Project.GetByIDOrSlug(ctx, nil, strings.TrimSpace(projectKey))
	if err != nil {
		return "", classify(s.log, err, "project", "export_units", projectKey)
	}
	units, err := s.repos.Unit.FindMany(ctx, nil, gateway.Filter{
		Eq:    map[string]any{"project_id": p.ID},
		Order: "number ASC",
	})
	if err != nil {
		return "", classify(s.log, err, "unit", "export", p.ID)
	}
	buildings, err := s.repos.Building.FindMany(ctx, nil, gateway.Where("project_id", p.ID))
	if err != nil {
		return "", classify(s.log, err, "building", "export", p.ID)
	}
	names := make(map[uuid.UUID]string, len(buildings))
	for _, b := range buildings {
		names[b.ID] = b.Name
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(unitExportHeader); err != nil {
		return "", err
	}
	for _, u := range units {
		if err := cw.Write(unitRecord(u, names, s.locale)); err != nil {
			return "", err
		}
	}
	cw.Flush()
	return p.Slug, cw.Error()
}

func unitRecord(u *types.Unit, buildings map[uuid.UUID]string, locale string) []string {
	building := ""
	if u.BuildingID != nil {
		building = buildings[*u.BuildingID]
	}
	return []string{
		u.ID.String(),
		u.Slug,
		u.Number,
		building,
		string(u.Status),
		strconv.Itoa(u.Floor),
		strconv.Itoa(u.Bedrooms),
		strconv.Itoa(u.Bathrooms),
		u.Area.StringFixed(2),
		u.Price.StringFixed(2),
		u.CurrencyCode,
		pricefmt.Format(u.Price, u.CurrencyCode, locale),
	}
}
