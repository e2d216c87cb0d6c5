package services

import (
	"context"
	"fmt"
	"strings"
	"time"

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

type LocationInput struct {
	Country   string   `json:"country" validate:"required,max=100"`
	City      string   `json:"city" validate:"required,max=100"`
	District  string   `json:"district" validate:"max=100"`
	Address   string   `json:"address" validate:"max=300"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

type TranslationInput struct {
	Language    string `json:"language" validate:"required,min=2,max=10"`
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description"`
}

// ProjectInput is the full writable shape of a project. Update replaces every
// field, including location, translations and amenity links.
type ProjectInput struct {
	Name               string              `json:"name" validate:"required,max=200"`
	Description        string              `json:"description"`
	Status             types.ProjectStatus `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE COMPLETED ARCHIVED"`
	Class              string              `json:"class" validate:"omitempty,oneof=ECONOMY COMFORT BUSINESS PREMIUM ELITE"`
	Type               string              `json:"type" validate:"omitempty,oneof=RESIDENTIAL COMMERCIAL MIXED"`
	BuildingStatus     string              `json:"buildingStatus" validate:"omitempty,oneof=PLANNED UNDER_CONSTRUCTION COMPLETED"`
	ConstructionStatus int                 `json:"constructionStatus" validate:"gte=0,lte=100"`
	CompletionDate     *time.Time          `json:"completionDate"`
	PriceFrom          decimal.Decimal     `json:"priceFrom" validate:"gte=0"`
	CurrencyCode       string              `json:"currencyCode" validate:"omitempty,len=3,alpha"`
	DeveloperID        *uuid.UUID          `json:"developerId"`
	Location           *LocationInput      `json:"location"`
	Translations       []TranslationInput  `json:"translations" validate:"dive"`
	AmenityIDs         []uuid.UUID         `json:"amenityIds"`
}

type ProjectService interface {
	Create(ctx context.Context, in ProjectInput) (*types.Project, error)
	Update(ctx context.Context, projectKey string, in ProjectInput) (*types.Project, error)
	BulkDelete(ctx context.Context, ids []uuid.UUID) (int, error)
}

type projectService struct {
	db         *gorm.DB
	log        *logger.Logger
	repos      repos.Set
	objects    gcp.ObjectStore
	similarity SimilarityService
}

// NewProjectService wires project writes. objects and similarity may be nil;
// they only receive best-effort cleanup after a delete commits.
func NewProjectService(db *gorm.DB, log *logger.Logger, set repos.Set, objects gcp.ObjectStore, similarity SimilarityService) ProjectService {
	return &projectService{
		db:         db,
		log:        log.With("service", "ProjectService"),
		repos:      set,
		objects:    objects,
		similarity: similarity,
	}
}

func (s *projectService) Create(ctx context.Context, in ProjectInput) (*types.Project, error) {
	if err := s.check(ctx, &in); err != nil {
		return nil, err
	}
	p := &types.Project{}
	applyProjectInput(p, in)
	if p.Status == "" {
		p.Status = types.ProjectStatusDraft
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sl, err := slug.Unique(ctx, slug.Make(in.Name), func(ctx context.Context, candidate string) (bool, error) {
			return s.repos.Project.SlugExists(ctx, tx, candidate)
		})
		if err != nil {
			return err
		}
		p.Slug = sl
		if _, err := s.repos.Project.Create(ctx, tx, []*types.Project{p}); err != nil {
			return err
		}
		return s.writeChildren(ctx, tx, p.ID, in)
	})
	if err != nil {
		return nil, classify(s.log, err, "project", "create", in.Name)
	}
	s.log.Info("project created", "project_id", p.ID, "slug", p.Slug)
	return p, nil
}

func (s *projectService) Update(ctx context.Context, projectKey string, in ProjectInput) (*types.Project, error) {
	if err := s.check(ctx, &in); err != nil {
		return nil, err
	}
	var p *types.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.repos.Project.GetByIDOrSlug(ctx, tx, strings.TrimSpace(projectKey))
		if err != nil {
			return err
		}
		p = found
		status := p.Status
		applyProjectInput(p, in)
		if p.Status == "" {
			p.Status = status
		}
		if err := s.repos.Project.Update(ctx, tx, p); err != nil {
			return err
		}
		if _, err := s.repos.Location.DeleteMany(ctx, tx, gateway.Where("project_id", p.ID)); err != nil {
			return err
		}
		return s.writeChildren(ctx, tx, p.ID, in)
	})
	if err != nil {
		return nil, classify(s.log, err, "project", "update", projectKey)
	}
	return p, nil
}

// check runs shape validation, then the rules that need the database.
func (s *projectService) check(ctx context.Context, in *ProjectInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.CurrencyCode = strings.ToUpper(strings.TrimSpace(in.CurrencyCode))
	if err := validate.Struct(in); err != nil {
		return err
	}
	if err := checkTranslations(in.Translations); err != nil {
		return err
	}
	if in.DeveloperID != nil {
		ok, err := s.repos.Developer.Exists(ctx, nil, gateway.ByID(*in.DeveloperID))
		if err != nil {
			return classify(s.log, err, "developer", "lookup", *in.DeveloperID)
		}
		if !ok {
			return apierr.ValidationField("developerId", "unknown developer")
		}
	}
	in.AmenityIDs = dedupeIDs(in.AmenityIDs)
	if len(in.AmenityIDs) > 0 {
		n, err := s.repos.Amenity.Count(ctx, nil, gateway.ByIDs(in.AmenityIDs))
		if err != nil {
			return classify(s.log, err, "amenity", "lookup", "")
		}
		if int(n) != len(in.AmenityIDs) {
			return apierr.ValidationField("amenityIds", "contains an unknown amenity")
		}
	}
	return nil
}

func (s *projectService) writeChildren(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, in ProjectInput) error {
	if in.Location != nil {
		loc := &types.Location{
			ProjectID: projectID,
			Country:   strings.TrimSpace(in.Location.Country),
			City:      strings.TrimSpace(in.Location.City),
			District:  strings.TrimSpace(in.Location.District),
			Address:   strings.TrimSpace(in.Location.Address),
			Latitude:  in.Location.Latitude,
			Longitude: in.Location.Longitude,
		}
		if _, err := s.repos.Location.Create(ctx, tx, []*types.Location{loc}); err != nil {
			return err
		}
	}
	if err := s.repos.Translation.ReplaceForOwner(ctx, tx, types.OwnerProject, projectID, translationRows(in.Translations)); err != nil {
		return err
	}
	return s.repos.Amenity.ReplaceProjectLinks(ctx, tx, projectID, in.AmenityIDs)
}

// BulkDelete removes projects and everything that hangs off them in one
// transaction. Unit versions are kept. Unknown ids are ignored.
func (s *projectService) BulkDelete(ctx context.Context, ids []uuid.UUID) (int, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return 0, apierr.ValidationField("ids", "must contain at least one id")
	}
	var (
		deleted     int64
		removed     []uuid.UUID
		storageKeys []string
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		projects, err := s.repos.Project.FindMany(ctx, tx, gateway.ByIDs(ids))
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			return nil
		}
		projectIDs := idsOf(projects, func(p *types.Project) uuid.UUID { return p.ID })
		keys, err := s.cascade(ctx, tx, projectIDs)
		if err != nil {
			return err
		}
		storageKeys = keys
		removed = projectIDs
		deleted, err = s.repos.Project.DeleteMany(ctx, tx, gateway.ByIDs(projectIDs))
		return err
	})
	if err != nil {
		return 0, classify(s.log, err, "project", "bulk_delete", fmt.Sprint(ids))
	}

	s.cleanupObjects(ctx, storageKeys)
	if s.similarity != nil && len(removed) > 0 {
		s.similarity.Forget(ctx, removed)
	}
	s.log.Info("projects deleted", "requested", len(ids), "deleted", deleted)
	return int(deleted), nil
}

func (s *projectService) cascade(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]string, error) {
	byProject := gateway.Filter{In: map[string]any{"project_id": projectIDs}}

	units, err := s.repos.Unit.FindMany(ctx, tx, byProject)
	if err != nil {
		return nil, err
	}
	unitIDs := idsOf(units, func(u *types.Unit) uuid.UUID { return u.ID })
	buildings, err := s.repos.Building.FindMany(ctx, tx, byProject)
	if err != nil {
		return nil, err
	}
	buildingIDs := idsOf(buildings, func(b *types.Building) uuid.UUID { return b.ID })
	plans, err := s.repos.FloorPlan.FindMany(ctx, tx, gateway.Filter{In: map[string]any{"building_id": buildingIDs}})
	if err != nil {
		return nil, err
	}
	planIDs := idsOf(plans, func(p *types.FloorPlan) uuid.UUID { return p.ID })

	var keys []string
	for _, owner := range []struct {
		kind types.OwnerType
		ids  []uuid.UUID
	}{
		{types.OwnerProject, projectIDs},
		{types.OwnerUnit, unitIDs},
		{types.OwnerBuilding, buildingIDs},
	} {
		if len(owner.ids) == 0 {
			continue
		}
		media, err := s.repos.Media.FindMany(ctx, tx, gateway.Filter{Eq: map[string]any{"owner_type": owner.kind}, In: map[string]any{"owner_id": owner.ids}})
		if err != nil {
			return nil, err
		}
		for _, m := range media {
			keys = append(keys, m.StorageKey)
		}
		if err := s.repos.Media.DeleteForOwners(ctx, tx, owner.kind, owner.ids); err != nil {
			return nil, err
		}
	}
	docs, err := s.repos.Document.FindMany(ctx, tx, byProject)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		keys = append(keys, d.StorageKey)
	}

	pcs, err := s.repos.PurchaseConditions.FindMany(ctx, tx, byProject)
	if err != nil {
		return nil, err
	}
	pcIDs := idsOf(pcs, func(p *types.PurchaseConditions) uuid.UUID { return p.ID })

	steps := []func() error{
		func() error { return s.repos.Translation.DeleteForOwners(ctx, tx, types.OwnerProject, projectIDs) },
		func() error { return s.repos.Translation.DeleteForOwners(ctx, tx, types.OwnerUnit, unitIDs) },
		func() error { return s.repos.Amenity.DeleteProjectLinks(ctx, tx, projectIDs) },
		func() error { return s.repos.Amenity.DeleteUnitLinks(ctx, tx, unitIDs) },
		func() error { return s.repos.PaymentStage.DeleteFor(ctx, tx, pcIDs...) },
		func() error { return s.repos.AgentCommission.DeleteFor(ctx, tx, pcIDs...) },
		func() error { return s.repos.CashbackBonus.DeleteFor(ctx, tx, pcIDs...) },
		func() error { return s.repos.AdditionalExpense.DeleteFor(ctx, tx, pcIDs...) },
		func() error { return s.repos.Assignment.DeleteForProjects(ctx, tx, projectIDs) },
		func() error {
			_, err := s.repos.FloorPlanArea.DeleteMany(ctx, tx, gateway.Filter{In: map[string]any{"floor_plan_id": planIDs}})
			return err
		},
		func() error {
			_, err := s.repos.FloorPlan.DeleteMany(ctx, tx, gateway.Filter{In: map[string]any{"building_id": buildingIDs}})
			return err
		},
		func() error { _, err := s.repos.Unit.DeleteMany(ctx, tx, byProject); return err },
		func() error { _, err := s.repos.Building.DeleteMany(ctx, tx, byProject); return err },
		func() error { _, err := s.repos.Layout.DeleteMany(ctx, tx, byProject); return err },
		func() error { _, err := s.repos.Location.DeleteMany(ctx, tx, byProject); return err },
		func() error { _, err := s.repos.Document.DeleteMany(ctx, tx, byProject); return err },
		func() error { _, err := s.repos.PurchaseConditions.DeleteMany(ctx, tx, byProject); return err },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func (s *projectService) cleanupObjects(ctx context.Context, keys []string) {
	if s.objects == nil {
		return
	}
	for _, k := range keys {
		if k == "" {
			continue
		}
		if err := s.objects.DeleteObject(ctx, k); err != nil {
			s.log.Warn("object cleanup failed", "key", k, "error", err)
		}
	}
}

func applyProjectInput(p *types.Project, in ProjectInput) {
	p.Name = in.Name
	p.Description = strings.TrimSpace(in.Description)
	p.Status = in.Status
	p.Class = in.Class
	p.Type = in.Type
	p.BuildingStatus = in.BuildingStatus
	p.ConstructionStatus = in.ConstructionStatus
	p.CompletionDate = in.CompletionDate
	p.PriceFrom = in.PriceFrom
	p.CurrencyCode = in.CurrencyCode
	p.DeveloperID = in.DeveloperID
}

// checkTranslations enforces one translation per language.
func checkTranslations(in []TranslationInput) error {
	seen := map[string]int{}
	for i := range in {
		lang := normalizeLanguage(in[i].Language)
		in[i].Language = lang
		if prev, dup := seen[lang]; dup {
			return apierr.ValidationField(fmt.Sprintf("translations[%d].language", i), fmt.Sprintf("duplicates translations[%d]", prev))
		}
		seen[lang] = i
	}
	return nil
}

func normalizeLanguage(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
}

func translationRows(in []TranslationInput) []*types.Translation {
	rows := make([]*types.Translation, 0, len(in))
	for _, t := range in {
		rows = append(rows, &types.Translation{
			Language:    t.Language,
			Name:        strings.TrimSpace(t.Name),
			Description: strings.TrimSpace(t.Description),
		})
	}
	return rows
}
