package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/access"
	"github.com/yungbote/estatehub-backend/internal/data/repos"
	server "github.com/yungbote/estatehub-backend/internal/http"
	httpH "github.com/yungbote/estatehub-backend/internal/http/handlers"
	httpMW "github.com/yungbote/estatehub-backend/internal/http/middleware"
	"github.com/yungbote/estatehub-backend/internal/observability"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

func wireRouterConfig(db *gorm.DB, log *logger.Logger, cfg Config, metrics *observability.Metrics, set repos.Set, svc Services) (server.RouterConfig, error) {
	log.Info("Wiring handlers...")
	table, err := access.DefaultTable()
	if err != nil {
		return server.RouterConfig{}, fmt.Errorf("load permission table: %w", err)
	}
	gate := access.NewGate(log, table, set.Assignment)

	return server.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		ServiceName:    cfg.Otel.ServiceName,
		TracingEnabled: cfg.Otel.Enabled,
		CORSOrigins:    cfg.CORSOrigins,

		AuthMiddleware: httpMW.NewAuthMiddleware(log, svc.Auth),
		GateMiddleware: httpMW.NewGateMiddleware(log, gate, svc.Scopes),

		AuthHandler:               httpH.NewAuthHandler(svc.Auth),
		ProjectHandler:            httpH.NewProjectHandler(svc.ReadModel, svc.Projects, svc.Similarity),
		UnitHandler:               httpH.NewUnitHandler(svc.ReadModel, svc.Units, svc.Imports, svc.Export),
		BuildingHandler:           httpH.NewBuildingHandler(svc.ReadModel, svc.Buildings),
		PurchaseConditionsHandler: httpH.NewPurchaseConditionsHandler(svc.PurchaseConditions),
		MediaHandler:              httpH.NewMediaHandler(svc.Media),
		AssignmentHandler:         httpH.NewAssignmentHandler(svc.Assignments),
		DeveloperHandler:          httpH.NewDeveloperHandler(svc.Developers),
		AmenityHandler:            httpH.NewAmenityHandler(svc.Amenities),
		CurrencyHandler:           httpH.NewCurrencyHandler(svc.Currencies),
		PlacesHandler:             httpH.NewPlacesHandler(svc.Places),
		MessageHandler:            httpH.NewMessageHandler(svc.Messages),
		HealthHandler:             httpH.NewHealthHandler(pingDB(db)),
	}, nil
}

func pingDB(db *gorm.DB) httpH.Pinger {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
