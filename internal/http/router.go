package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/estatehub-backend/internal/access"
	httpH "github.com/yungbote/estatehub-backend/internal/http/handlers"
	httpMW "github.com/yungbote/estatehub-backend/internal/http/middleware"
	"github.com/yungbote/estatehub-backend/internal/observability"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	TracingEnabled bool
	CORSOrigins    []string

	AuthMiddleware *httpMW.AuthMiddleware
	GateMiddleware *httpMW.GateMiddleware

	AuthHandler               *httpH.AuthHandler
	ProjectHandler            *httpH.ProjectHandler
	UnitHandler               *httpH.UnitHandler
	BuildingHandler           *httpH.BuildingHandler
	PurchaseConditionsHandler *httpH.PurchaseConditionsHandler
	MediaHandler              *httpH.MediaHandler
	AssignmentHandler         *httpH.AssignmentHandler
	DeveloperHandler          *httpH.DeveloperHandler
	AmenityHandler            *httpH.AmenityHandler
	CurrencyHandler           *httpH.CurrencyHandler
	PlacesHandler             *httpH.PlacesHandler
	MessageHandler            *httpH.MessageHandler
	HealthHandler             *httpH.HealthHandler
}

// NewRouter wires every route. Reads are public; anything that writes goes
// through RequireAuth and the permission gate.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	r.MaxMultipartMemory = 16 << 20

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	auth := cfg.AuthMiddleware.RequireAuth()
	gate := cfg.GateMiddleware
	byProject := gate.ProjectParam("id")

	// Auth
	if h := cfg.AuthHandler; h != nil {
		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", auth, h.Logout)
		api.GET("/auth/me", auth, h.Me)
		api.GET("/users", auth, gate.Require(access.ResourceUsers, access.ActionView, nil), h.ListUsers)
		api.POST("/users", auth, gate.Require(access.ResourceUsers, access.ActionCreate, nil), h.CreateUser)
	}

	// Projects
	if h := cfg.ProjectHandler; h != nil {
		api.GET("/projects", h.List)
		api.GET("/projects/:id", h.Get)
		api.GET("/projects/:id/similar", h.Similar)
		api.GET("/similar", h.Search)
		api.POST("/projects", auth, gate.Require(access.ResourceProjects, access.ActionCreate, nil), h.Create)
		api.PUT("/projects/:id", auth, gate.Require(access.ResourceProjects, access.ActionEdit, byProject), h.Update)
		api.POST("/projects/bulk-delete", auth, gate.Require(access.ResourceProjects, access.ActionDelete, gate.ProjectIDsInBody()), h.BulkDelete)
		api.POST("/projects/:id/vectorize", auth, gate.Require(access.ResourceProjects, access.ActionEdit, byProject), h.Vectorize)
	}

	// Purchase conditions
	if h := cfg.PurchaseConditionsHandler; h != nil {
		pc := api.Group("/projects/:id/purchase-conditions")
		edit := gate.Require(access.ResourceProjects, access.ActionEdit, byProject)
		pc.GET("/payment-stages", h.PaymentStages())
		pc.POST("/payment-stages", auth, edit, h.ReplacePaymentStages())
		pc.GET("/agent-commissions", h.AgentCommissions())
		pc.POST("/agent-commissions", auth, edit, h.ReplaceAgentCommissions())
		pc.GET("/cashback-bonuses", h.CashbackBonuses())
		pc.POST("/cashback-bonuses", auth, edit, h.ReplaceCashbackBonuses())
		pc.GET("/additional-expenses", h.AdditionalExpenses())
		pc.POST("/additional-expenses", auth, edit, h.ReplaceAdditionalExpenses())
	}

	// Media and documents
	if h := cfg.MediaHandler; h != nil {
		api.POST("/projects/:id/media", auth, gate.Require(access.ResourceMedia, access.ActionCreate, byProject), h.UploadProjectMedia)
		api.DELETE("/projects/:id/media/:mediaId", auth, gate.Require(access.ResourceMedia, access.ActionDelete, byProject), h.DeleteProjectMedia)
		api.POST("/projects/:id/documents", auth, gate.Require(access.ResourceMedia, access.ActionCreate, byProject), h.UploadDocument)
		api.DELETE("/projects/:id/documents/:documentId", auth, gate.Require(access.ResourceMedia, access.ActionDelete, byProject), h.DeleteDocument)

		byUnit, byBuilding := gate.UnitParam("id"), gate.BuildingParam("id")
		api.POST("/units/:id/media", auth, gate.Require(access.ResourceMedia, access.ActionCreate, byUnit), h.UploadUnitMedia)
		api.DELETE("/units/:id/media/:mediaId", auth, gate.Require(access.ResourceMedia, access.ActionDelete, byUnit), h.DeleteUnitMedia)
		api.POST("/buildings/:id/media", auth, gate.Require(access.ResourceMedia, access.ActionCreate, byBuilding), h.UploadBuildingMedia)
		api.DELETE("/buildings/:id/media/:mediaId", auth, gate.Require(access.ResourceMedia, access.ActionDelete, byBuilding), h.DeleteBuildingMedia)
	}

	// Assignments
	if h := cfg.AssignmentHandler; h != nil {
		api.GET("/projects/:id/assignments", auth, gate.Require(access.ResourceUsers, access.ActionView, nil), h.List)
		api.POST("/projects/:id/assignments", auth, gate.Require(access.ResourceUsers, access.ActionEdit, nil), h.Assign)
		api.DELETE("/projects/:id/assignments/:userId", auth, gate.Require(access.ResourceUsers, access.ActionEdit, nil), h.Unassign)
	}

	// Units
	if h := cfg.UnitHandler; h != nil {
		api.GET("/units", h.List)
		api.GET("/units/:id", h.Get)
		api.GET("/units/:id/versions", auth, gate.Require(access.ResourceImports, access.ActionView, gate.UnitParam("id")), h.Versions)
		api.POST("/units", auth, gate.Require(access.ResourceUnits, access.ActionCreate, gate.ProjectInBody()), h.Create)
		api.PUT("/units/:id", auth, gate.Require(access.ResourceUnits, access.ActionEdit, gate.UnitParam("id")), h.Update)
		api.POST("/units/bulk-delete", auth, gate.Require(access.ResourceUnits, access.ActionDelete, gate.UnitIDsInBody()), h.BulkDelete)
		api.POST("/units/import", auth, gate.Require(access.ResourceImports, access.ActionCreate, gate.ProjectInBody()), h.Import)
		api.GET("/projects/:id/units/export", auth, gate.Require(access.ResourceProjects, access.ActionExport, byProject), h.Export)
	}

	// Buildings, floor plans, layouts
	if h := cfg.BuildingHandler; h != nil {
		byBuilding := gate.BuildingParam("id")
		api.GET("/projects/:id/buildings", h.ListForProject)
		api.POST("/projects/:id/buildings", auth, gate.Require(access.ResourceBuildings, access.ActionCreate, byProject), h.Create)
		api.POST("/projects/:id/layouts", auth, gate.Require(access.ResourceBuildings, access.ActionCreate, byProject), h.CreateLayout)
		api.GET("/buildings/:id", h.Get)
		api.PUT("/buildings/:id", auth, gate.Require(access.ResourceBuildings, access.ActionEdit, byBuilding), h.Update)
		api.DELETE("/buildings/:id", auth, gate.Require(access.ResourceBuildings, access.ActionDelete, byBuilding), h.Delete)
		api.POST("/buildings/:id/floor-plans", auth, gate.Require(access.ResourceBuildings, access.ActionEdit, byBuilding), h.CreateFloorPlan)
		api.POST("/buildings/:id/floor-plans/:floorPlanId/areas", auth, gate.Require(access.ResourceBuildings, access.ActionEdit, byBuilding), h.ReplaceAreas)
	}

	// Reference data
	if h := cfg.DeveloperHandler; h != nil {
		api.GET("/developers", h.List)
		api.POST("/developers", auth, gate.Require(access.ResourceDevelopers, access.ActionCreate, nil), h.Create)
		api.PUT("/developers/:id", auth, gate.Require(access.ResourceDevelopers, access.ActionEdit, nil), h.Update)
		api.DELETE("/developers/:id", auth, gate.Require(access.ResourceDevelopers, access.ActionDelete, nil), h.Delete)
	}
	if h := cfg.AmenityHandler; h != nil {
		api.GET("/amenities", h.List)
		api.POST("/amenities", auth, gate.Require(access.ResourceProjects, access.ActionCreate, nil), h.Create)
	}
	if h := cfg.CurrencyHandler; h != nil {
		api.GET("/currencies", h.List)
		api.POST("/currencies", auth, gate.Require(access.ResourceCurrencies, access.ActionCreate, nil), h.Create)
		api.PUT("/currencies/:id", auth, gate.Require(access.ResourceCurrencies, access.ActionEdit, nil), h.Update)
		api.DELETE("/currencies/:id", auth, gate.Require(access.ResourceCurrencies, access.ActionDelete, nil), h.Delete)
	}

	// Places and localization
	if h := cfg.PlacesHandler; h != nil {
		api.GET("/places/nearby", h.Nearby)
		api.GET("/projects/:id/nearby", h.NearProject)
	}
	if h := cfg.MessageHandler; h != nil {
		api.GET("/messages", h.Locales)
		api.GET("/messages/:locale", h.Get)
	}

	return r
}
