package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/estatehub-backend/internal/data/repos"
	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/pkg/pricefmt"
	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

const (
	similarUnitsLimit    = 4
	similarProjectsLimit = 4
	defaultPageSize      = 20
	maxPageSize          = 100
)

type DeveloperView struct {
	*types.Developer
	Translations []*types.Translation `json:"translations"`
}

type PurchaseConditionsView struct {
	*types.PurchaseConditions
	PaymentStages      []*types.PaymentStage      `json:"paymentStages"`
	AgentCommissions   []*types.AgentCommission   `json:"agentCommissions"`
	CashbackBonuses    []*types.CashbackBonus     `json:"cashbackBonuses"`
	AdditionalExpenses []*types.AdditionalExpense `json:"additionalExpenses"`
}

type ProjectDetail struct {
	*types.Project
	FormattedPrice     string                  `json:"formattedPrice"`
	Developer          *DeveloperView          `json:"developer"`
	Location           *types.Location         `json:"location"`
	Media              []*types.Media          `json:"media"`
	Buildings          []*types.Building       `json:"buildings"`
	Units              []*types.Unit           `json:"units"`
	Amenities          []*types.Amenity        `json:"amenities"`
	Documents          []*types.Document       `json:"documents"`
	Translations       []*types.Translation    `json:"translations"`
	PurchaseConditions *PurchaseConditionsView `json:"purchaseConditions"`
}

type ProjectSummary struct {
	ID        uuid.UUID           `json:"id"`
	Slug      string              `json:"slug"`
	Name      string              `json:"name"`
	Status    types.ProjectStatus `json:"status"`
	Developer *types.Developer    `json:"developer"`
	Location  *types.Location     `json:"location"`
}

type UnitDetail struct {
	*types.Unit
	FormattedPrice  string               `json:"formattedPrice"`
	Layout          *types.Layout        `json:"layout"`
	Building        *types.Building      `json:"building"`
	Project         *ProjectSummary      `json:"project"`
	Amenities       []*types.Amenity     `json:"amenities"`
	Translations    []*types.Translation `json:"translations"`
	Media           []*types.Media       `json:"media"`
	SimilarUnits    []*types.Unit        `json:"similarUnits"`
	SimilarProjects []SimilarProject     `json:"similarProjects"`
}

type FloorPlanView struct {
	*types.FloorPlan
	Areas []*types.FloorPlanArea `json:"areas"`
}

type BuildingDetail struct {
	*types.Building
	FloorPlans []*FloorPlanView `json:"floorPlans"`
	Units      []*types.Unit    `json:"units"`
	Media      []*types.Media   `json:"media"`
}

type ProjectListItem struct {
	*types.Project
	FormattedPrice string          `json:"formattedPrice"`
	Location       *types.Location `json:"location"`
}

type UnitListItem struct {
	*types.Unit
	FormattedPrice string `json:"formattedPrice"`
}

type Page[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

type ProjectListQuery struct {
	Status            []string
	City              string
	DeveloperID       *uuid.UUID
	PriceMin          *decimal.Decimal
	PriceMax          *decimal.Decimal
	HasAvailableUnits bool
	Limit             int
	Offset            int
}

type UnitListQuery struct {
	ProjectID  *uuid.UUID
	BuildingID *uuid.UUID
	Status     []string
	Bedrooms   *int
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	Limit      int
	Offset     int
}

type ReadModelService interface {
	ProjectDetail(ctx context.Context, idOrSlug string) (*ProjectDetail, error)
	UnitDetail(ctx context.Context, idOrSlug string) (*UnitDetail, error)
	BuildingDetail(ctx context.Context, id string) (*BuildingDetail, error)
	ListProjects(ctx context.Context, q ProjectListQuery) (*Page[*ProjectListItem], error)
	ListUnits(ctx context.Context, q UnitListQuery) (*Page[*UnitListItem], error)
	ListBuildings(ctx context.Context, projectKey string) ([]*types.Building, error)
}

type readModelService struct {
	log        *logger.Logger
	repos      repos.Set
	similarity SimilarityService
	locale     string
}

// NewReadModelService builds the assembler. similarity may be nil, in which
// case similar projects are always empty.
func NewReadModelService(log *logger.Logger, set repos.Set, similarity SimilarityService, locale string) ReadModelService {
	if locale == "" {
		locale = "en"
	}
	return &readModelService{
		log:        log.With("service", "ReadModelService"),
		repos:      set,
		similarity: similarity,
		locale:     locale,
	}
}

// settle runs a secondary fetch. A failure is logged and leaves the field at
// its zero value so the view degrades instead of failing.
func (s *readModelService) settle(g *errgroup.Group, ctx context.Context, view, field string, fn func(context.Context) error) {
	g.Go(func() error {
		if err := fn(ctx); err != nil && !isNotFound(err) {
			s.log.Warn("read model field degraded", "view", view, "field", field, "error", err)
		}
		return nil
	})
}

func (s *readModelService) ProjectDetail(ctx context.Context, idOrSlug string) (*ProjectDetail, error) {
	p, err := s.repos.Project.GetByIDOrSlug(ctx, nil, strings.TrimSpace(idOrSlug))
	if err != nil {
		return nil, classify(s.log, err, "project", "detail", idOrSlug)
	}
	out := &ProjectDetail{
		Project:        p,
		FormattedPrice: pricefmt.Format(p.PriceFrom, p.CurrencyCode, s.locale),
		Media:          []*types.Media{},
		Buildings:      []*types.Building{},
		Units:          []*types.Unit{},
		Amenities:      []*types.Amenity{},
		Documents:      []*types.Document{},
		Translations:   []*types.Translation{},
	}

	var g errgroup.Group
	const view = "project"
	if p.DeveloperID != nil {
		s.settle(&g, ctx, view, "developer", func(ctx context.Context) error {
			d, err := s.developerView(ctx, *p.DeveloperID)
			if err == nil {
				out.Developer = d
			}
			return err
		})
	}
	s.settle(&g, ctx, view, "location", func(ctx context.Context) error {
		loc, err := s.repos.Location.Find(ctx, nil, gateway.Where("project_id", p.ID))
		if err == nil {
			out.Location = loc
		}
		return err
	})
	s.settle(&g, ctx, view, "media", func(ctx context.Context) error {
		rows, err := s.repos.Media.ListForOwner(ctx, nil, types.OwnerProject, p.ID)
		if err == nil {
			out.Media = rows
		}
		return err
	})
	s.settle(&g, ctx, view, "buildings", func(ctx context.Context) error {
		rows, err := s.repos.Building.FindMany(ctx, nil, gateway.Filter{Eq: map[string]any{"project_id": p.ID}, Order: "name ASC"})
		if err == nil {
			out.Buildings = rows
		}
		return err
	})
	s.settle(&g, ctx, view, "units", func(ctx context.Context) error {
		rows, err := s.repos.Unit.FindMany(ctx, nil, gateway.Filter{Eq: map[string]any{"project_id": p.ID}, Order: "floor ASC, number ASC"})
		if err == nil {
			out.Units = rows
		}
		return err
	})
	s.settle(&g, ctx, view, "amenities", func(ctx context.Context) error {
		rows, err := s.repos.Amenity.ListForProject(ctx, nil, p.ID)
		if err == nil {
			out.Amenities = rows
		}
		return err
	})
	s.settle(&g, ctx, view, "documents", func(ctx context.Context) error {
		rows, err := s.repos.Document.FindMany(ctx, nil, gateway.Filter{Eq: map[string]any{"project_id": p.ID}, Order: "created_at ASC"})
		if err == nil {
			out.Documents = rows
		}
		return err
	})
	s.settle(&g, ctx, view, "translations", func(ctx context.Context) error {
		rows, err := s.repos.Translation.ListForOwner(ctx, nil, types.OwnerProject, p.ID)
		if err == nil {
			out.Translations = rows
		}
		return err
	})
	s.settle(&g, ctx, view, "purchaseConditions", func(ctx context.Context) error {
		pc, err := s.purchaseConditionsView(ctx, p.ID)
		if err == nil {
			out.PurchaseConditions = pc
		}
		return err
	})
	_ = g.Wait()
	return out, nil
}

func (s *readModelService) developerView(ctx context.Context, id uuid.UUID) (*DeveloperView, error) {
	d, err := s.repos.Developer.Find(ctx, nil, gateway.ByID(id))
	if err != nil {
		return nil, err
	}
	view := &DeveloperView{Developer: d, Translations: []*types.Translation{}}
	tr, err := s.repos.Translation.ListForOwner(ctx, nil, types.OwnerDeveloper, id)
	if err != nil {
		s.log.Warn("developer translations degraded", "developer_id", id, "error", err)
		return view, nil
	}
	view.Translations = tr
	return view, nil
}

func (s *readModelService) purchaseConditionsView(ctx context.Context, projectID uuid.UUID) (*PurchaseConditionsView, error) {
	pc, err := s.repos.PurchaseConditions.GetByProject(ctx, nil, projectID)
	if err != nil {
		return nil, err
	}
	view := &PurchaseConditionsView{PurchaseConditions: pc}
	var g errgroup.Group
	g.Go(func() (err error) { view.PaymentStages, err = s.repos.PaymentStage.ListFor(ctx, nil, pc.ID); return })
	g.Go(func() (err error) { view.AgentCommissions, err = s.repos.AgentCommission.ListFor(ctx, nil, pc.ID); return })
	g.Go(func() (err error) { view.CashbackBonuses, err = s.repos.CashbackBonus.ListFor(ctx, nil, pc.ID); return })
	g.Go(func() (err error) { view.AdditionalExpenses, err = s.repos.AdditionalExpense.ListFor(ctx, nil, pc.ID); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *readModelService) UnitDetail(ctx context.Context, idOrSlug string) (*UnitDetail, error) {
	u, err := s.repos.Unit.GetByIDOrSlug(ctx, nil, strings.TrimSpace(idOrSlug))
	if err != nil {
		return nil, classify(s.log, err, "unit", "detail", idOrSlug)
	}
	out := &UnitDetail{
		Unit:            u,
		FormattedPrice:  pricefmt.Format(u.Price, u.CurrencyCode, s.locale),
		Amenities:       []*types.Amenity{},
		Translations:    []*types.Translation{},
		Media:           []*types.Media{},
		SimilarUnits:    []*types.Unit{},
		SimilarProjects: []SimilarProject{},
	}

	var g errgroup.Group
	const view = "unit"
	if u.LayoutID != nil {
		s.settle(&g, ctx, view, "layout", func(ctx context.Context) error {
			l, err := s.repos.Layout.Find(ctx, nil, gateway.ByID(*u.LayoutID))
			if err == nil {
				out.Layout = l
			}
			return err
		})
	}
	if u.BuildingID != nil {
		s.settle(&g, ctx, view, "building", func(ctx context.Context) error {
			b, err := s.repos.Building.Find(ctx, nil, gateway.ByID(*u.BuildingID))
			if err == nil {
				out.Building = b
			}
			return err
		})
	}
	s.settle(&g, ctx, view, "project", func(ctx context.Context) error {
		ps, err := s.projectSummary(ctx, u.ProjectID)
		if err == nil {
			out.Project = ps
		}
		return err
	})
	s.settle(&g, ctx, view, "amenities", func(ctx context.Context) error {
		rows, err := s.repos.Amenity.ListForUnit(ctx, nil, u.ID)
		if err == nil {
			out.Amenities = rows
		}
		return err
	})
	s.settle(&g, ctx, view, "translations", func(ctx context.Context) error {
		rows, err := s.repos.Translation.ListForOwner(ctx, nil, types.OwnerUnit, u.ID)
		if err == nil {
			out.Translations = rows
		}
		return err
	})
	s.settle(&g, ctx, view, "media", func(ctx context.Context) error {
		rows, err := s.repos.Media.ListForOwner(ctx, nil, types.OwnerUnit, u.ID)
		if err == nil {
			out.Media = rows
		}
		return err
	})
	s.settle(&g, ctx, view, "similarUnits", func(ctx context.Context) error {
		rows, err := s.repos.Unit.ListSimilar(ctx, nil, u, similarUnitsLimit)
		if err == nil {
			out.SimilarUnits = rows
		}
		return err
	})
	if s.similarity != nil {
		s.settle(&g, ctx, view, "similarProjects", func(ctx context.Context) error {
			rows, err := s.similarity.SimilarToProject(ctx, u.ProjectID.String(), similarProjectsLimit)
			if err == nil {
				out.SimilarProjects = rows
			}
			return err
		})
	}
	_ = g.Wait()
	return out, nil
}

func (s *readModelService) projectSummary(ctx context.Context, projectID uuid.UUID) (*ProjectSummary, error) {
	p, err := s.repos.Project.Find(ctx, nil, gateway.ByID(projectID))
	if err != nil {
		return nil, err
	}
	out := &ProjectSummary{ID: p.ID, Slug: p.Slug, Name: p.Name, Status: p.Status}
	if p.DeveloperID != nil {
		if d, err := s.repos.Developer.Find(ctx, nil, gateway.ByID(*p.DeveloperID)); err == nil {
			out.Developer = d
		} else if !isNotFound(err) {
			s.log.Warn("project summary developer degraded", "project_id", p.ID, "error", err)
		}
	}
	if loc, err := s.repos.Location.Find(ctx, nil, gateway.Where("project_id", p.ID)); err == nil {
		out.Location = loc
	} else if !isNotFound(err) {
		s.log.Warn("project summary location degraded", "project_id", p.ID, "error", err)
	}
	return out, nil
}

func (s *readModelService) BuildingDetail(ctx context.Context, id string) (*BuildingDetail, error) {
	buildingID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, apierr.NotFound("building")
	}
	b, err := s.repos.Building.Find(ctx, nil, gateway.ByID(buildingID))
	if err != nil {
		return nil, classify(s.log, err, "building", "detail", id)
	}
	out := &BuildingDetail{
		Building:   b,
		FloorPlans: []*FloorPlanView{},
		Units:      []*types.Unit{},
		Media:      []*types.Media{},
	}

	var g errgroup.Group
	const view = "building"
	s.settle(&g, ctx, view, "floorPlans", func(ctx context.Context) error {
		plans, err := s.floorPlans(ctx, b.ID)
		if err == nil {
			out.FloorPlans = plans
		}
		return err
	})
	s.settle(&g, ctx, view, "units", func(ctx context.Context) error {
		rows, err := s.repos.Unit.FindMany(ctx, nil, gateway.Filter{Eq: map[string]any{"building_id": b.ID}, Order: "floor ASC, number ASC"})
		if err == nil {
			out.Units = rows
		}
		return err
	})
	s.settle(&g, ctx, view, "media", func(ctx context.Context) error {
		rows, err := s.repos.Media.ListForOwner(ctx, nil, types.OwnerBuilding, b.ID)
		if err == nil {
			out.Media = rows
		}
		return err
	})
	_ = g.Wait()
	return out, nil
}

func (s *readModelService) floorPlans(ctx context.Context, buildingID uuid.UUID) ([]*FloorPlanView, error) {
	plans, err := s.repos.FloorPlan.FindMany(ctx, nil, gateway.Filter{Eq: map[string]any{"building_id": buildingID}, Order: "floor_number ASC"})
	if err != nil {
		return nil, err
	}
	out := make([]*FloorPlanView, 0, len(plans))
	if len(plans) == 0 {
		return out, nil
	}
	areas, err := s.repos.FloorPlanArea.FindMany(ctx, nil, gateway.Filter{
		In:    map[string]any{"floor_plan_id": idsOf(plans, func(p *types.FloorPlan) uuid.UUID { return p.ID })},
		Order: "sort_order ASC",
	})
	if err != nil {
		return nil, err
	}
	byPlan := map[uuid.UUID][]*types.FloorPlanArea{}
	for _, a := range areas {
		byPlan[a.FloorPlanID] = append(byPlan[a.FloorPlanID], a)
	}
	for _, p := range plans {
		v := &FloorPlanView{FloorPlan: p, Areas: byPlan[p.ID]}
		if v.Areas == nil {
			v.Areas = []*types.FloorPlanArea{}
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *readModelService) ListBuildings(ctx context.Context, projectKey string) ([]*types.Building, error) {
	p, err := s.repos.Project.GetByIDOrSlug(ctx, nil, strings.TrimSpace(projectKey))
	if err != nil {
		return nil, classify(s.log, err, "project", "list_buildings", projectKey)
	}
	rows, err := s.repos.Building.FindMany(ctx, nil, gateway.Filter{Eq: map[string]any{"project_id": p.ID}, Order: "name ASC"})
	if err != nil {
		return nil, classify(s.log, err, "building", "list", p.ID)
	}
	return rows, nil
}

func (s *readModelService) ListProjects(ctx context.Context, q ProjectListQuery) (*Page[*ProjectListItem], error) {
	limit, offset := pageBounds(q.Limit, q.Offset)
	f := gateway.Filter{Eq: map[string]any{}, In: map[string]any{}, Order: "created_at DESC, id ASC", Limit: limit, Offset: offset}
	if len(q.Status) > 0 {
		f.In["status"] = upperAll(q.Status)
	}
	if q.DeveloperID != nil {
		f.Eq["developer_id"] = *q.DeveloperID
	}
	if q.PriceMin != nil || q.PriceMax != nil {
		f.Ranges = append(f.Ranges, decimalRange("price_from", q.PriceMin, q.PriceMax))
	}
	if city := strings.TrimSpace(q.City); city != "" {
		f.Has = append(f.Has, gateway.Exists{Table: types.Location{}.TableName(), ForeignKey: "project_id", Eq: map[string]any{"city": city}})
	}
	if q.HasAvailableUnits {
		f.Has = append(f.Has, gateway.Exists{Table: types.Unit{}.TableName(), ForeignKey: "project_id", Eq: map[string]any{"status": types.UnitStatusAvailable}})
	}

	var (
		rows  []*types.Project
		total int64
	)
	var g errgroup.Group
	g.Go(func() (err error) { rows, err = s.repos.Project.FindMany(ctx, nil, f); return })
	g.Go(func() (err error) { total, err = s.repos.Project.Count(ctx, nil, f); return })
	if err := g.Wait(); err != nil {
		return nil, classify(s.log, err, "project", "list", "")
	}

	locations := map[uuid.UUID]*types.Location{}
	if len(rows) > 0 {
		locs, err := s.repos.Location.FindMany(ctx, nil, gateway.Filter{In: map[string]any{"project_id": idsOf(rows, func(p *types.Project) uuid.UUID { return p.ID })}})
		if err != nil {
			s.log.Warn("project list locations degraded", "error", err)
		}
		for _, l := range locs {
			locations[l.ProjectID] = l
		}
	}

	items := make([]*ProjectListItem, 0, len(rows))
	for _, p := range rows {
		items = append(items, &ProjectListItem{
			Project:        p,
			FormattedPrice: pricefmt.Format(p.PriceFrom, p.CurrencyCode, s.locale),
			Location:       locations[p.ID],
		})
	}
	return &Page[*ProjectListItem]{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *readModelService) ListUnits(ctx context.Context, q UnitListQuery) (*Page[*UnitListItem], error) {
	limit, offset := pageBounds(q.Limit, q.Offset)
	f := gateway.Filter{Eq: map[string]any{}, In: map[string]any{}, Order: "price ASC, number ASC", Limit: limit, Offset: offset}
	if q.ProjectID != nil {
		f.Eq["project_id"] = *q.ProjectID
	}
	if q.BuildingID != nil {
		f.Eq["building_id"] = *q.BuildingID
	}
	if q.Bedrooms != nil {
		f.Eq["bedrooms"] = *q.Bedrooms
	}
	if len(q.Status) > 0 {
		f.In["status"] = upperAll(q.Status)
	}
	if q.PriceMin != nil || q.PriceMax != nil {
		f.Ranges = append(f.Ranges, decimalRange("price", q.PriceMin, q.PriceMax))
	}

	var (
		rows  []*types.Unit
		total int64
	)
	var g errgroup.Group
	g.Go(func() (err error) { rows, err = s.repos.Unit.FindMany(ctx, nil, f); return })
	g.Go(func() (err error) { total, err = s.repos.Unit.Count(ctx, nil, f); return })
	if err := g.Wait(); err != nil {
		return nil, classify(s.log, err, "unit", "list", "")
	}

	items := make([]*UnitListItem, 0, len(rows))
	for _, u := range rows {
		items = append(items, &UnitListItem{Unit: u, FormattedPrice: pricefmt.Format(u.Price, u.CurrencyCode, s.locale)})
	}
	return &Page[*UnitListItem]{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func decimalRange(column string, min, max *decimal.Decimal) gateway.Range {
	r := gateway.Range{Column: column}
	if min != nil {
		r.Min = *min
	}
	if max != nil {
		r.Max = *max
	}
	return r
}

func upperAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
