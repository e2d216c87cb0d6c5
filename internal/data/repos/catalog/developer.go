package catalog

import (
	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type DeveloperRepo = gateway.Gateway[types.Developer]

func NewDeveloperRepo(db *gorm.DB, baseLog *logger.Logger) DeveloperRepo {
	return gateway.NewTable[types.Developer](db, baseLog.With("repo", "DeveloperRepo"))
}

type LocationRepo = gateway.Gateway[types.Location]

func NewLocationRepo(db *gorm.DB, baseLog *logger.Logger) LocationRepo {
	return gateway.NewTable[types.Location](db, baseLog.With("repo", "LocationRepo"))
}

type DocumentRepo = gateway.Gateway[types.Document]

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	return gateway.NewTable[types.Document](db, baseLog.With("repo", "DocumentRepo"))
}
