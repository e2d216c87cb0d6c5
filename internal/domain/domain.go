package domain

import (
	"github.com/shopspring/decimal"

	"github.com/yungbote/estatehub-backend/internal/domain/account"
	"github.com/yungbote/estatehub-backend/internal/domain/catalog"
	"github.com/yungbote/estatehub-backend/internal/domain/commerce"
	"github.com/yungbote/estatehub-backend/internal/domain/imports"
)

func init() {
	// Prices and rates travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type (
	Project        = catalog.Project
	ProjectStatus  = catalog.ProjectStatus
	Location       = catalog.Location
	Developer      = catalog.Developer
	Amenity        = catalog.Amenity
	ProjectAmenity = catalog.ProjectAmenity
	UnitAmenity    = catalog.UnitAmenity
	Document       = catalog.Document
	Unit           = catalog.Unit
	UnitStatus     = catalog.UnitStatus
	Layout         = catalog.Layout
	Building       = catalog.Building
	FloorPlan      = catalog.FloorPlan
	FloorPlanArea  = catalog.FloorPlanArea
	Media          = catalog.Media
	MediaKind      = catalog.MediaKind
	OwnerType      = catalog.OwnerType
	Translation    = catalog.Translation

	Currency           = commerce.Currency
	PurchaseConditions = commerce.PurchaseConditions
	PaymentStage       = commerce.PaymentStage
	AgentCommission    = commerce.AgentCommission
	CashbackBonus      = commerce.CashbackBonus
	AdditionalExpense  = commerce.AdditionalExpense

	ImportBatch = imports.ImportBatch
	UnitVersion = imports.UnitVersion

	User              = account.User
	ProjectAssignment = account.ProjectAssignment
)

const (
	ProjectStatusDraft     = catalog.ProjectStatusDraft
	ProjectStatusActive    = catalog.ProjectStatusActive
	ProjectStatusCompleted = catalog.ProjectStatusCompleted
	ProjectStatusArchived  = catalog.ProjectStatusArchived

	UnitStatusAvailable   = catalog.UnitStatusAvailable
	UnitStatusReserved    = catalog.UnitStatusReserved
	UnitStatusSold        = catalog.UnitStatusSold
	UnitStatusUnavailable = catalog.UnitStatusUnavailable

	OwnerProject   = catalog.OwnerProject
	OwnerUnit      = catalog.OwnerUnit
	OwnerBuilding  = catalog.OwnerBuilding
	OwnerDeveloper = catalog.OwnerDeveloper

	MediaKindImage = catalog.MediaKindImage
	MediaKindVideo = catalog.MediaKindVideo
	MediaKindPlan  = catalog.MediaKindPlan
)

var ErrUnitVersionImmutable = imports.ErrImmutable

// Models lists every persisted type in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&ProjectAssignment{},

		&Developer{},
		&Project{},
		&Location{},
		&Amenity{},
		&ProjectAmenity{},
		&Building{},
		&FloorPlan{},
		&Layout{},
		&Unit{},
		&UnitAmenity{},
		&FloorPlanArea{},
		&Media{},
		&Document{},
		&Translation{},

		&Currency{},
		&PurchaseConditions{},
		&PaymentStage{},
		&AgentCommission{},
		&CashbackBonus{},
		&AdditionalExpense{},

		&ImportBatch{},
		&UnitVersion{},
	}
}
