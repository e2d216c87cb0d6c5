package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/repos"
	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/pkg/slug"
	"github.com/yungbote/estatehub-backend/internal/pkg/validate"
	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

const maxImportRows = 5000

type ImportUnitRow struct {
	Number       string           `json:"number" validate:"required,max=50"`
	BuildingID   *uuid.UUID       `json:"buildingId"`
	Status       types.UnitStatus `json:"status" validate:"omitempty,oneof=AVAILABLE RESERVED SOLD UNAVAILABLE"`
	Area         decimal.Decimal  `json:"area" validate:"gte=0"`
	Price        decimal.Decimal  `json:"price" validate:"gte=0"`
	CurrencyCode string           `json:"currencyCode" validate:"omitempty,len=3,alpha"`
	Bedrooms     int              `json:"bedrooms" validate:"gte=0,lte=50"`
	Bathrooms    int              `json:"bathrooms" validate:"gte=0,lte=50"`
	Floor        int              `json:"floor"`
	Description  string           `json:"description"`
}

type ImportInput struct {
	ProjectID uuid.UUID       `json:"projectId" validate:"required"`
	Source    string          `json:"source" validate:"max=200"`
	Units     []ImportUnitRow `json:"units" validate:"required,min=1,dive"`
}

type ImportResult struct {
	Batch   *types.ImportBatch `json:"batch"`
	Created int                `json:"created"`
	Updated int                `json:"updated"`
}

type ImportService interface {
	ImportUnits(ctx context.Context, in ImportInput, createdBy *uuid.UUID) (*ImportResult, error)
	ListVersions(ctx context.Context, unitKey string) ([]*types.UnitVersion, error)
}

type importService struct {
	db    *gorm.DB
	log   *logger.Logger
	repos repos.Set
}

func NewImportService(db *gorm.DB, log *logger.Logger, set repos.Set) ImportService {
	return &importService{db: db, log: log.With("service", "ImportService"), repos: set}
}

// ImportUnits upserts every row by (project, number) and appends one
// snapshot per touched unit under a fresh batch. It is all or nothing.
func (s *importService) ImportUnits(ctx context.Context, in ImportInput, createdBy *uuid.UUID) (*ImportResult, error) {
	in.Source = strings.TrimSpace(in.Source)
	if in.Source == "" {
		in.Source = "api"
	}
	seen := make(map[string]int, len(in.Units))
	for i := range in.Units {
		r := &in.Units[i]
		r.Number = strings.TrimSpace(r.Number)
		r.CurrencyCode = strings.ToUpper(strings.TrimSpace(r.CurrencyCode))
		if prev, dup := seen[r.Number]; dup && r.Number != "" {
			return nil, apierr.ValidationField(fmt.Sprintf("units[%d].number", i), fmt.Sprintf("duplicates units[%d]", prev))
		}
		seen[r.Number] = i
	}
	if len(in.Units) > maxImportRows {
		return nil, apierr.ValidationField("units", fmt.Sprintf("at most %d rows per import", maxImportRows))
	}
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}

	res := &ImportResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := s.repos.Project.Find(ctx, tx, gateway.ByID(in.ProjectID))
		if isNotFound(err) {
			return apierr.ValidationField("projectId", "unknown project")
		}
		if err != nil {
			return err
		}
		existing, err := s.repos.Unit.FindMany(ctx, tx, gateway.Where("project_id", project.ID))
		if err != nil {
			return err
		}
		byNumber := make(map[string]*types.Unit, len(existing))
		for _, u := range existing {
			byNumber[u.Number] = u
		}

		batch := &types.ImportBatch{Source: in.Source, CreatedByID: createdBy, UnitCount: len(in.Units)}
		if _, err := s.repos.ImportBatch.Create(ctx, tx, []*types.ImportBatch{batch}); err != nil {
			return err
		}
		res.Batch = batch

		versions := make([]*types.UnitVersion, 0, len(in.Units))
		for i, row := range in.Units {
			if row.BuildingID != nil {
				ok, err := s.repos.Building.BelongsToProject(ctx, tx, *row.BuildingID, project.ID)
				if err != nil {
					return err
				}
				if !ok {
					return apierr.ValidationField(fmt.Sprintf("units[%d].buildingId", i), "building does not belong to the project")
				}
			}
			u, created, err := s.upsertUnit(ctx, tx, project, byNumber[row.Number], row)
			if err != nil {
				return err
			}
			if created {
				res.Created++
			} else {
				res.Updated++
			}
			snap, err := json.Marshal(u)
			if err != nil {
				return fmt.Errorf("snapshot unit %s: %w", u.ID, err)
			}
			versions = append(versions, &types.UnitVersion{UnitID: u.ID, ImportBatchID: batch.ID, Snapshot: datatypes.JSON(snap)})
		}
		_, err = s.repos.UnitVersion.Append(ctx, tx, versions)
		return err
	})
	if err != nil {
		return nil, classify(s.log, err, "unit", "import", in.ProjectID)
	}
	s.log.Info("units imported",
		"project_id", in.ProjectID,
		"batch_id", res.Batch.ID,
		"created", res.Created,
		"updated", res.Updated,
	)
	return res, nil
}

func (s *importService) upsertUnit(ctx context.Context, tx *gorm.DB, project *types.Project, current *types.Unit, row ImportUnitRow) (*types.Unit, bool, error) {
	u := current
	created := u == nil
	if created {
		u = &types.Unit{ProjectID: project.ID, Number: row.Number, Status: types.UnitStatusAvailable}
	}
	// A floor plan belongs to one building; moving the unit unpins it.
	if !sameID(u.BuildingID, row.BuildingID) {
		u.FloorPlanID = nil
	}
	u.BuildingID = row.BuildingID
	if row.Status != "" {
		u.Status = row.Status
	}
	u.Area = row.Area
	u.Price = row.Price
	u.CurrencyCode = row.CurrencyCode
	if u.CurrencyCode == "" {
		u.CurrencyCode = project.CurrencyCode
	}
	u.Bedrooms = row.Bedrooms
	u.Bathrooms = row.Bathrooms
	u.Floor = row.Floor
	u.Description = strings.TrimSpace(row.Description)

	if !created {
		return u, false, s.repos.Unit.Update(ctx, tx, u)
	}
	sl, err := slug.Unique(ctx, slug.Make(project.Slug+" "+row.Number), func(ctx context.Context, candidate string) (bool, error) {
		return s.repos.Unit.SlugExists(ctx, tx, candidate)
	})
	if err != nil {
		return nil, false, err
	}
	u.Slug = sl
	if _, err := s.repos.Unit.Create(ctx, tx, []*types.Unit{u}); err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *importService) ListVersions(ctx context.Context, unitKey string) ([]*types.UnitVersion, error) {
	u, err := s.repos.Unit.GetByIDOrSlug(ctx, nil, strings.TrimSpace(unitKey))
	if err != nil {
		return nil, classify(s.log, err, "unit", "list_versions", unitKey)
	}
	rows, err := s.repos.UnitVersion.ListForUnit(ctx, nil, u.ID)
	if err != nil {
		return nil, classify(s.log, err, "unit_version", "list", u.ID)
	}
	return rows, nil
}
