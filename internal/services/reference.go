package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/repos"
	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/pkg/slug"
	"github.com/yungbote/estatehub-backend/internal/pkg/validate"
	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type DeveloperInput struct {
	Name         string             `json:"name" validate:"required,max=200"`
	LogoURL      string             `json:"logoUrl" validate:"omitempty,url"`
	Website      string             `json:"website" validate:"omitempty,url"`
	Description  string             `json:"description"`
	Translations []TranslationInput `json:"translations" validate:"dive"`
}

type AmenityInput struct {
	Code string `json:"code" validate:"omitempty,max=64"`
	Name string `json:"name" validate:"required,max=100"`
	Icon string `json:"icon" validate:"max=100"`
}

type DeveloperService interface {
	List(ctx context.Context) ([]*DeveloperView, error)
	Create(ctx context.Context, in DeveloperInput) (*DeveloperView, error)
	Update(ctx context.Context, id uuid.UUID, in DeveloperInput) (*DeveloperView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type developerService struct {
	db    *gorm.DB
	log   *logger.Logger
	repos repos.Set
}

func NewDeveloperService(db *gorm.DB, log *logger.Logger, set repos.Set) DeveloperService {
	return &developerService{db: db, log: log.With("service", "DeveloperService"), repos: set}
}

func (s *developerService) List(ctx context.Context) ([]*DeveloperView, error) {
	devs, err := s.repos.Developer.FindMany(ctx, nil, gateway.Filter{Order: "name ASC"})
	if err != nil {
		return nil, classify(s.log, err, "developer", "list", "")
	}
	ids := idsOf(devs, func(d *types.Developer) uuid.UUID { return d.ID })
	trs, err := s.repos.Translation.FindMany(ctx, nil, gateway.Filter{
		Eq:    map[string]any{"owner_type": types.OwnerDeveloper},
		In:    map[string]any{"owner_id": ids},
		Order: "language ASC",
	})
	if err != nil {
		return nil, classify(s.log, err, "translation", "list", "")
	}
	byOwner := map[uuid.UUID][]*types.Translation{}
	for _, t := range trs {
		byOwner[t.OwnerID] = append(byOwner[t.OwnerID], t)
	}
	out := make([]*DeveloperView, 0, len(devs))
	for _, d := range devs {
		v := &DeveloperView{Developer: d, Translations: byOwner[d.ID]}
		if v.Translations == nil {
			v.Translations = []*types.Translation{}
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *developerService) Create(ctx context.Context, in DeveloperInput) (*DeveloperView, error) {
	if err := normalizeDeveloper(&in); err != nil {
		return nil, err
	}
	d := &types.Developer{}
	applyDeveloperInput(d, in)
	var trs []*types.Translation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.repos.Developer.Create(ctx, tx, []*types.Developer{d}); err != nil {
			return err
		}
		trs = translationRows(in.Translations)
		return s.repos.Translation.ReplaceForOwner(ctx, tx, types.OwnerDeveloper, d.ID, trs)
	})
	if err != nil {
		return nil, classify(s.log, err, "developer", "create", in.Name)
	}
	return &DeveloperView{Developer: d, Translations: trs}, nil
}

func (s *developerService) Update(ctx context.Context, id uuid.UUID, in DeveloperInput) (*DeveloperView, error) {
	if err := normalizeDeveloper(&in); err != nil {
		return nil, err
	}
	var (
		d   *types.Developer
		trs []*types.Translation
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.repos.Developer.Find(ctx, tx, gateway.ByID(id))
		if err != nil {
			return err
		}
		applyDeveloperInput(found, in)
		if err := s.repos.Developer.Update(ctx, tx, found); err != nil {
			return err
		}
		d = found
		trs = translationRows(in.Translations)
		return s.repos.Translation.ReplaceForOwner(ctx, tx, types.OwnerDeveloper, id, trs)
	})
	if err != nil {
		return nil, classify(s.log, err, "developer", "update", id)
	}
	return &DeveloperView{Developer: d, Translations: trs}, nil
}

// Delete is refused while any project still points at the developer.
func (s *developerService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.repos.Developer.Find(ctx, tx, gateway.ByID(id)); err != nil {
			return err
		}
		inUse, err := s.repos.Project.Exists(ctx, tx, gateway.Where("developer_id", id))
		if err != nil {
			return err
		}
		if inUse {
			return apierr.Conflict("developer is referenced by projects")
		}
		if err := s.repos.Translation.DeleteForOwners(ctx, tx, types.OwnerDeveloper, []uuid.UUID{id}); err != nil {
			return err
		}
		if err := s.repos.Media.DeleteForOwners(ctx, tx, types.OwnerDeveloper, []uuid.UUID{id}); err != nil {
			return err
		}
		_, err = s.repos.Developer.DeleteMany(ctx, tx, gateway.ByID(id))
		return err
	})
	if err != nil {
		return classify(s.log, err, "developer", "delete", id)
	}
	return nil
}

func normalizeDeveloper(in *DeveloperInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.LogoURL = strings.TrimSpace(in.LogoURL)
	in.Website = strings.TrimSpace(in.Website)
	if err := validate.Struct(in); err != nil {
		return err
	}
	return checkTranslations(in.Translations)
}

func applyDeveloperInput(d *types.Developer, in DeveloperInput) {
	d.Name = in.Name
	d.LogoURL = in.LogoURL
	d.Website = in.Website
	d.Description = strings.TrimSpace(in.Description)
}

type AmenityService interface {
	List(ctx context.Context) ([]*types.Amenity, error)
	Create(ctx context.Context, in AmenityInput) (*types.Amenity, error)
}

type amenityService struct {
	log   *logger.Logger
	repos repos.Set
}

func NewAmenityService(log *logger.Logger, set repos.Set) AmenityService {
	return &amenityService{log: log.With("service", "AmenityService"), repos: set}
}

func (s *amenityService) List(ctx context.Context) ([]*types.Amenity, error) {
	rows, err := s.repos.Amenity.FindMany(ctx, nil, gateway.Filter{Order: "name ASC"})
	if err != nil {
		return nil, classify(s.log, err, "amenity", "list", "")
	}
	return rows, nil
}

// Create derives the code from the name when none is given.
func (s *amenityService) Create(ctx context.Context, in AmenityInput) (*types.Amenity, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.TrimSpace(in.Code)
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	if in.Code == "" {
		in.Code = slug.Make(in.Name)
	}
	a := &types.Amenity{Code: in.Code, Name: in.Name, Icon: strings.TrimSpace(in.Icon)}
	if _, err := s.repos.Amenity.Create(ctx, nil, []*types.Amenity{a}); err != nil {
		return nil, classify(s.log, err, "amenity", "create", in.Code)
	}
	return a, nil
}
