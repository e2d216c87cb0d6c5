package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/repos"
	"github.com/yungbote/estatehub-backend/internal/platform/i18n"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
	"github.com/yungbote/estatehub-backend/internal/services"
)

type Services struct {
	Auth               services.AuthService
	Assignments        services.AssignmentService
	Scopes             services.ScopeResolver
	ReadModel          services.ReadModelService
	Projects           services.ProjectService
	Units              services.UnitService
	Buildings          services.BuildingService
	PurchaseConditions services.PurchaseConditionsService
	Media              services.MediaService
	Imports            services.ImportService
	Export             services.ExportService
	Similarity         services.SimilarityService
	Developers         services.DeveloperService
	Amenities          services.AmenityService
	Currencies         services.CurrencyService
	Places             services.PlacesService
	Messages           services.MessageService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, set repos.Set, clients Clients) (Services, error) {
	log.Info("Wiring services...")
	catalog, err := i18n.Load()
	if err != nil {
		return Services{}, fmt.Errorf("load message catalogs: %w", err)
	}

	similarity := services.NewSimilarityService(log, set, clients.Embedder, clients.Vectors)
	return Services{
		Auth:               services.NewAuthService(db, log, set, clients.Sessions, cfg.JWTSecretKey),
		Assignments:        services.NewAssignmentService(log, set),
		Scopes:             services.NewScopeResolver(log, set),
		ReadModel:          services.NewReadModelService(log, set, similarity, cfg.DefaultLocale),
		Projects:           services.NewProjectService(db, log, set, clients.Objects, similarity),
		Units:              services.NewUnitService(db, log, set, clients.Objects),
		Buildings:          services.NewBuildingService(db, log, set),
		PurchaseConditions: services.NewPurchaseConditionsService(db, log, set),
		Media:              services.NewMediaService(log, set, clients.Objects),
		Imports:            services.NewImportService(db, log, set),
		Export:             services.NewExportService(log, set, cfg.DefaultLocale),
		Similarity:         similarity,
		Developers:         services.NewDeveloperService(db, log, set),
		Amenities:          services.NewAmenityService(log, set),
		Currencies:         services.NewCurrencyService(db, log, set),
		Places:             services.NewPlacesService(log, set, clients.Places),
		Messages:           services.NewMessageService(catalog),
	}, nil
}
