package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/repos"
	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/pkg/slug"
	"github.com/yungbote/estatehub-backend/internal/pkg/validate"
	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/platform/gcp"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type UnitInput struct {
	ProjectID    uuid.UUID          `json:"projectId" validate:"required"`
	BuildingID   *uuid.UUID         `json:"buildingId"`
	LayoutID     *uuid.UUID         `json:"layoutId"`
	FloorPlanID  *uuid.UUID         `json:"floorPlanId"`
	Number       string             `json:"number" validate:"required,max=50"`
	Status       types.UnitStatus   `json:"status" validate:"omitempty,oneof=AVAILABLE RESERVED SOLD UNAVAILABLE"`
	Area         decimal.Decimal    `json:"area" validate:"gte=0"`
	Price        decimal.Decimal    `json:"price" validate:"gte=0"`
	CurrencyCode string             `json:"currencyCode" validate:"omitempty,len=3,alpha"`
	Bedrooms     int                `json:"bedrooms" validate:"gte=0,lte=50"`
	Bathrooms    int                `json:"bathrooms" validate:"gte=0,lte=50"`
	Floor        int                `json:"floor"`
	Description  string             `json:"description"`
	Translations []TranslationInput `json:"translations" validate:"dive"`
	AmenityIDs   []uuid.UUID        `json:"amenityIds"`
}

type UnitService interface {
	Create(ctx context.Context, in UnitInput) (*types.Unit, error)
	Update(ctx context.Context, unitKey string, in UnitInput) (*types.Unit, error)
	BulkDelete(ctx context.Context, ids []uuid.UUID) (int, error)
}

type unitService struct {
	db      *gorm.DB
	log     *logger.Logger
	repos   repos.Set
	objects gcp.ObjectStore
}

func NewUnitService(db *gorm.DB, log *logger.Logger, set repos.Set, objects gcp.ObjectStore) UnitService {
	return &unitService{db: db, log: log.With("service", "UnitService"), repos: set, objects: objects}
}

func (s *unitService) Create(ctx context.Context, in UnitInput) (*types.Unit, error) {
	if err := normalizeUnit(&in); err != nil {
		return nil, err
	}
	u := &types.Unit{}
	applyUnitInput(u, in)
	if u.Status == "" {
		u.Status = types.UnitStatusAvailable
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := s.repos.Project.Find(ctx, tx, gateway.ByID(in.ProjectID))
		if isNotFound(err) {
			return apierr.ValidationField("projectId", "unknown project")
		}
		if err != nil {
			return err
		}
		if err := s.checkRelations(ctx, tx, nil, in); err != nil {
			return err
		}
		if u.CurrencyCode == "" {
			u.CurrencyCode = project.CurrencyCode
		}
		sl, err := slug.Unique(ctx, slug.Make(project.Slug+" "+in.Number), func(ctx context.Context, candidate string) (bool, error) {
			return s.repos.Unit.SlugExists(ctx, tx, candidate)
		})
		if err != nil {
			return err
		}
		u.Slug = sl
		if _, err := s.repos.Unit.Create(ctx, tx, []*types.Unit{u}); err != nil {
			return err
		}
		return s.writeChildren(ctx, tx, u.ID, in)
	})
	if err != nil {
		return nil, classify(s.log, err, "unit", "create", in.Number)
	}
	s.log.Info("unit created", "unit_id", u.ID, "project_id", u.ProjectID, "number", u.Number)
	return u, nil
}

func (s *unitService) Update(ctx context.Context, unitKey string, in UnitInput) (*types.Unit, error) {
	if err := normalizeUnit(&in); err != nil {
		return nil, err
	}
	var u *types.Unit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.repos.Unit.GetByIDOrSlug(ctx, tx, strings.TrimSpace(unitKey))
		if err != nil {
			return err
		}
		if found.ProjectID != in.ProjectID {
			return apierr.ValidationField("projectId", "a unit cannot move between projects")
		}
		if err := s.checkRelations(ctx, tx, &found.ID, in); err != nil {
			return err
		}
		status, currency := found.Status, found.CurrencyCode
		applyUnitInput(found, in)
		if found.Status == "" {
			found.Status = status
		}
		if found.CurrencyCode == "" {
			found.CurrencyCode = currency
		}
		if err := s.repos.Unit.Update(ctx, tx, found); err != nil {
			return err
		}
		u = found
		return s.writeChildren(ctx, tx, u.ID, in)
	})
	if err != nil {
		return nil, classify(s.log, err, "unit", "update", unitKey)
	}
	return u, nil
}

// checkRelations enforces that every referenced building, layout and floor
// plan belongs to the unit's project, and that the number is free there.
func (s *unitService) checkRelations(ctx context.Context, tx *gorm.DB, self *uuid.UUID, in UnitInput) error {
	if in.BuildingID != nil {
		ok, err := s.repos.Building.BelongsToProject(ctx, tx, *in.BuildingID, in.ProjectID)
		if err != nil {
			return err
		}
		if !ok {
			return apierr.ValidationField("buildingId", "building does not belong to the project")
		}
	}
	if in.LayoutID != nil {
		ok, err := s.repos.Layout.Exists(ctx, tx, gateway.Filter{Eq: map[string]any{"id": *in.LayoutID, "project_id": in.ProjectID}})
		if err != nil {
			return err
		}
		if !ok {
			return apierr.ValidationField("layoutId", "layout does not belong to the project")
		}
	}
	if in.FloorPlanID != nil {
		if in.BuildingID == nil {
			return apierr.ValidationField("floorPlanId", "requires buildingId")
		}
		ok, err := s.repos.FloorPlan.Exists(ctx, tx, gateway.Filter{Eq: map[string]any{"id": *in.FloorPlanID, "building_id": *in.BuildingID}})
		if err != nil {
			return err
		}
		if !ok {
			return apierr.ValidationField("floorPlanId", "floor plan does not belong to the building")
		}
	}
	if len(in.AmenityIDs) > 0 {
		n, err := s.repos.Amenity.Count(ctx, tx, gateway.ByIDs(in.AmenityIDs))
		if err != nil {
			return err
		}
		if int(n) != len(in.AmenityIDs) {
			return apierr.ValidationField("amenityIds", "contains an unknown amenity")
		}
	}
	clash, err := s.repos.Unit.Find(ctx, tx, gateway.Filter{Eq: map[string]any{"project_id": in.ProjectID, "number": in.Number}})
	switch {
	case isNotFound(err):
		return nil
	case err != nil:
		return err
	case self == nil || clash.ID != *self:
		return apierr.Conflict(fmt.Sprintf("unit number %q already exists in this project", in.Number))
	}
	return nil
}

func (s *unitService) writeChildren(ctx context.Context, tx *gorm.DB, unitID uuid.UUID, in UnitInput) error {
	if err := s.repos.Translation.ReplaceForOwner(ctx, tx, types.OwnerUnit, unitID, translationRows(in.Translations)); err != nil {
		return err
	}
	return s.repos.Amenity.ReplaceUnitLinks(ctx, tx, unitID, in.AmenityIDs)
}

// BulkDelete removes units with their media, translations, amenity links and
// floor-plan bindings. Version history stays.
func (s *unitService) BulkDelete(ctx context.Context, ids []uuid.UUID) (int, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return 0, apierr.ValidationField("ids", "must contain at least one id")
	}
	var (
		deleted int64
		keys    []string
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		units, err := s.repos.Unit.FindMany(ctx, tx, gateway.ByIDs(ids))
		if err != nil || len(units) == 0 {
			return err
		}
		unitIDs := idsOf(units, func(u *types.Unit) uuid.UUID { return u.ID })
		media, err := s.repos.Media.FindMany(ctx, tx, gateway.Filter{Eq: map[string]any{"owner_type": types.OwnerUnit}, In: map[string]any{"owner_id": unitIDs}})
		if err != nil {
			return err
		}
		for _, m := range media {
			keys = append(keys, m.StorageKey)
		}
		if err := s.repos.Media.DeleteForOwners(ctx, tx, types.OwnerUnit, unitIDs); err != nil {
			return err
		}
		if err := s.repos.Translation.DeleteForOwners(ctx, tx, types.OwnerUnit, unitIDs); err != nil {
			return err
		}
		if err := s.repos.Amenity.DeleteUnitLinks(ctx, tx, unitIDs); err != nil {
			return err
		}
		if _, err := s.repos.FloorPlanArea.UpdateColumns(ctx, tx, gateway.Filter{In: map[string]any{"unit_id": unitIDs}}, map[string]any{"unit_id": nil}); err != nil {
			return err
		}
		deleted, err = s.repos.Unit.DeleteMany(ctx, tx, gateway.ByIDs(unitIDs))
		return err
	})
	if err != nil {
		return 0, classify(s.log, err, "unit", "bulk_delete", fmt.Sprint(ids))
	}
	if s.objects != nil {
		for _, k := range keys {
			if k == "" {
				continue
			}
			if err := s.objects.DeleteObject(ctx, k); err != nil {
				s.log.Warn("object cleanup failed", "key", k, "error", err)
			}
		}
	}
	s.log.Info("units deleted", "requested", len(ids), "deleted", deleted)
	return int(deleted), nil
}

func normalizeUnit(in *UnitInput) error {
	in.Number = strings.TrimSpace(in.Number)
	in.CurrencyCode = strings.ToUpper(strings.TrimSpace(in.CurrencyCode))
	in.AmenityIDs = dedupeIDs(in.AmenityIDs)
	if err := validate.Struct(in); err != nil {
		return err
	}
	return checkTranslations(in.Translations)
}

func applyUnitInput(u *types.Unit, in UnitInput) {
	u.ProjectID = in.ProjectID
	u.BuildingID = in.BuildingID
	u.LayoutID = in.LayoutID
	u.FloorPlanID = in.FloorPlanID
	u.Number = in.Number
	u.Status = in.Status
	u.Area = in.Area
	u.Price = in.Price
	u.CurrencyCode = in.CurrencyCode
	u.Bedrooms = in.Bedrooms
	u.Bathrooms = in.Bathrooms
	u.Floor = in.Floor
	u.Description = strings.TrimSpace(in.Description)
}
