package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/repos"
	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	pkgerrors "github.com/yungbote/estatehub-backend/internal/pkg/errors"
	"github.com/yungbote/estatehub-backend/internal/pkg/validate"
	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type BuildingInput struct {
	Name   string `json:"name" validate:"required,max=200"`
	Floors int    `json:"floors" validate:"gte=0,lte=300"`
}

type FloorPlanInput struct {
	FloorNumber int    `json:"floorNumber" validate:"gte=-10,lte=300"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

type FloorPlanAreaInput struct {
	UnitID      *uuid.UUID      `json:"unitId"`
	Label       string          `json:"label" validate:"max=100"`
	Coordinates json.RawMessage `json:"coordinates" validate:"required"`
}

type FloorPlanAreasInput struct {
	Areas []FloorPlanAreaInput `json:"areas" validate:"dive"`
}

type LayoutInput struct {
	Name      string          `json:"name" validate:"required,max=200"`
	Bedrooms  int             `json:"bedrooms" validate:"gte=0,lte=50"`
	Bathrooms int             `json:"bathrooms" validate:"gte=0,lte=50"`
	Area      decimal.Decimal `json:"area" validate:"gte=0"`
	ImageURL  string          `json:"imageUrl" validate:"omitempty,url"`
}

type BuildingService interface {
	Create(ctx context.Context, projectKey string, in BuildingInput) (*types.Building, error)
	Update(ctx context.Context, id uuid.UUID, in BuildingInput) (*types.Building, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CreateFloorPlan(ctx context.Context, buildingID uuid.UUID, in FloorPlanInput) (*types.FloorPlan, error)
	ReplaceFloorPlanAreas(ctx context.Context, buildingID, floorPlanID uuid.UUID, in FloorPlanAreasInput) ([]*types.FloorPlanArea, error)
	CreateLayout(ctx context.Context, projectKey string, in LayoutInput) (*types.Layout, error)
}

type buildingService struct {
	db    *gorm.DB
	log   *logger.Logger
	repos repos.Set
}

func NewBuildingService(db *gorm.DB, log *logger.Logger, set repos.Set) BuildingService {
	return &buildingService{db: db, log: log.With("service", "BuildingService"), repos: set}
}

func (s *buildingService) Create(ctx context.Context, projectKey string, in BuildingInput) (*types.Building, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	p, err := s.repos.Project.GetByIDOrSlug(ctx, nil, strings.TrimSpace(projectKey))
	if err != nil {
		return nil, classify(s.log, err, "project", "create_building", projectKey)
	}
	b := &types.Building{ProjectID: p.ID, Name: in.Name, Floors: in.Floors}
	if _, err := s.repos.Building.Create(ctx, nil, []*types.Building{b}); err != nil {
		return nil, classify(s.log, err, "building", "create", p.ID)
	}
	return b, nil
}

func (s *buildingService) Update(ctx context.Context, id uuid.UUID, in BuildingInput) (*types.Building, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	b, err := s.repos.Building.Find(ctx, nil, gateway.ByID(id))
	if err != nil {
		return nil, classify(s.log, err, "building", "update", id)
	}
	b.Name = in.Name
	b.Floors = in.Floors
	if err := s.repos.Building.Update(ctx, nil, b); err != nil {
		return nil, classify(s.log, err, "building", "update", id)
	}
	return b, nil
}

// Delete drops the building with its floor plans and areas. Units in the
// building stay in the project and lose their building binding.
func (s *buildingService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.repos.Building.Find(ctx, tx, gateway.ByID(id)); err != nil {
			return err
		}
		plans, err := s.repos.FloorPlan.FindMany(ctx, tx, gateway.Where("building_id", id))
		if err != nil {
			return err
		}
		planIDs := idsOf(plans, func(p *types.FloorPlan) uuid.UUID { return p.ID })
		if _, err := s.repos.FloorPlanArea.DeleteMany(ctx, tx, gateway.Filter{In: map[string]any{"floor_plan_id": planIDs}}); err != nil {
			return err
		}
		if _, err := s.repos.FloorPlan.DeleteMany(ctx, tx, gateway.Where("building_id", id)); err != nil {
			return err
		}
		if _, err := s.repos.Unit.UpdateColumns(ctx, tx, gateway.Where("building_id", id), map[string]any{"building_id": nil, "floor_plan_id": nil}); err != nil {
			return err
		}
		if err := s.repos.Media.DeleteForOwners(ctx, tx, types.OwnerBuilding, []uuid.UUID{id}); err != nil {
			return err
		}
		_, err = s.repos.Building.DeleteMany(ctx, tx, gateway.ByID(id))
		return err
	})
	if err != nil {
		return classify(s.log, err, "building", "delete", id)
	}
	return nil
}

func (s *buildingService) CreateFloorPlan(ctx context.Context, buildingID uuid.UUID, in FloorPlanInput) (*types.FloorPlan, error) {
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	if _, err := s.repos.Building.Find(ctx, nil, gateway.ByID(buildingID)); err != nil {
		return nil, classify(s.log, err, "building", "create_floor_plan", buildingID)
	}
	fp := &types.FloorPlan{BuildingID: buildingID, FloorNumber: in.FloorNumber, ImageURL: in.ImageURL}
	if _, err := s.repos.FloorPlan.Create(ctx, nil, []*types.FloorPlan{fp}); err != nil {
		return nil, classify(s.log, err, "floor_plan", "create", buildingID)
	}
	return fp, nil
}

// ReplaceFloorPlanAreas swaps the full polygon set of a floor plan. Bound
// units must belong to the building's project.
func (s *buildingService) ReplaceFloorPlanAreas(ctx context.Context, buildingID, floorPlanID uuid.UUID, in FloorPlanAreasInput) ([]*types.FloorPlanArea, error) {
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	for i, a := range in.Areas {
		if err := checkPolygon(a.Coordinates); err != nil {
			return nil, apierr.ValidationField(fmt.Sprintf("areas[%d].coordinates", i), err.Error())
		}
	}

	var out []*types.FloorPlanArea
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := s.repos.Building.Find(ctx, tx, gateway.ByID(buildingID))
		if err != nil {
			return err
		}
		// Locked so concurrent replaces of one floor plan do not interleave.
		_, err = s.repos.FloorPlan.Find(ctx, tx, gateway.Filter{
			Eq:        map[string]any{"id": floorPlanID, "building_id": buildingID},
			ForUpdate: true,
		})
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return apierr.NotFound("floor plan")
		}
		if err != nil {
			return err
		}

		rows := make([]*types.FloorPlanArea, 0, len(in.Areas))
		for i, a := range in.Areas {
			if a.UnitID != nil {
				owned, err := s.repos.Unit.Exists(ctx, tx, gateway.Filter{Eq: map[string]any{"id": *a.UnitID, "project_id": b.ProjectID}})
				if err != nil {
					return err
				}
				if !owned {
					return apierr.ValidationField(fmt.Sprintf("areas[%d].unitId", i), "unit does not belong to the project")
				}
			}
			rows = append(rows, &types.FloorPlanArea{
				FloorPlanID: floorPlanID,
				UnitID:      a.UnitID,
				Label:       strings.TrimSpace(a.Label),
				Coordinates: datatypes.JSON(a.Coordinates),
				SortOrder:   i,
			})
		}
		if _, err := s.repos.FloorPlanArea.DeleteMany(ctx, tx, gateway.Where("floor_plan_id", floorPlanID)); err != nil {
			return err
		}
		out, err = s.repos.FloorPlanArea.Create(ctx, tx, rows)
		return err
	})
	if err != nil {
		return nil, classify(s.log, err, "floor_plan_area", "replace", floorPlanID)
	}
	return out, nil
}

func (s *buildingService) CreateLayout(ctx context.Context, projectKey string, in LayoutInput) (*types.Layout, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	p, err := s.repos.Project.GetByIDOrSlug(ctx, nil, strings.TrimSpace(projectKey))
	if err != nil {
		return nil, classify(s.log, err, "project", "create_layout", projectKey)
	}
	l := &types.Layout{
		ProjectID: p.ID,
		Name:      in.Name,
		Bedrooms:  in.Bedrooms,
		Bathrooms: in.Bathrooms,
		Area:      in.Area,
		ImageURL:  strings.TrimSpace(in.ImageURL),
	}
	if _, err := s.repos.Layout.Create(ctx, nil, []*types.Layout{l}); err != nil {
		return nil, classify(s.log, err, "layout", "create", p.ID)
	}
	return l, nil
}

// checkPolygon accepts [[x,y],...] with at least three finite points.
func checkPolygon(raw json.RawMessage) error {
	var pts [][]float64
	if err := json.Unmarshal(raw, &pts); err != nil {
		return fmt.Errorf("must be an array of [x, y] points")
	}
	if len(pts) < 3 {
		return fmt.Errorf("needs at least 3 points")
	}
	for _, p := range pts {
		if len(p) != 2 {
			return fmt.Errorf("each point must have exactly 2 coordinates")
		}
	}
	return nil
}
