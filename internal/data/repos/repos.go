package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/repos/account"
	"github.com/yungbote/estatehub-backend/internal/data/repos/catalog"
	"github.com/yungbote/estatehub-backend/internal/data/repos/commerce"
	"github.com/yungbote/estatehub-backend/internal/data/repos/imports"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type ProjectRepo = catalog.ProjectRepo
type UnitRepo = catalog.UnitRepo
type BuildingRepo = catalog.BuildingRepo
type FloorPlanRepo = catalog.FloorPlanRepo
type FloorPlanAreaRepo = catalog.FloorPlanAreaRepo
type LayoutRepo = catalog.LayoutRepo
type DeveloperRepo = catalog.DeveloperRepo
type LocationRepo = catalog.LocationRepo
type DocumentRepo = catalog.DocumentRepo
type AmenityRepo = catalog.AmenityRepo
type MediaRepo = catalog.MediaRepo
type TranslationRepo = catalog.TranslationRepo

type CurrencyRepo = commerce.CurrencyRepo
type PurchaseConditionsRepo = commerce.PurchaseConditionsRepo
type PaymentStageRepo = commerce.PaymentStageRepo
type AgentCommissionRepo = commerce.AgentCommissionRepo
type CashbackBonusRepo = commerce.CashbackBonusRepo
type AdditionalExpenseRepo = commerce.AdditionalExpenseRepo

type ImportBatchRepo = imports.ImportBatchRepo
type UnitVersionRepo = imports.UnitVersionRepo

type UserRepo = account.UserRepo
type AssignmentRepo = account.AssignmentRepo

// Set bundles every repo over one database handle.
type Set struct {
	Project            ProjectRepo
	Unit               UnitRepo
	Building           BuildingRepo
	FloorPlan          FloorPlanRepo
	FloorPlanArea      FloorPlanAreaRepo
	Layout             LayoutRepo
	Developer          DeveloperRepo
	Location           LocationRepo
	Document           DocumentRepo
	Amenity            AmenityRepo
	Media              MediaRepo
	Translation        TranslationRepo
	Currency           CurrencyRepo
	PurchaseConditions PurchaseConditionsRepo
	PaymentStage       PaymentStageRepo
	AgentCommission    AgentCommissionRepo
	CashbackBonus      CashbackBonusRepo
	AdditionalExpense  AdditionalExpenseRepo
	ImportBatch        ImportBatchRepo
	UnitVersion        UnitVersionRepo
	User               UserRepo
	Assignment         AssignmentRepo
}

func NewSet(db *gorm.DB, log *logger.Logger) Set {
	return Set{
		Project:            catalog.NewProjectRepo(db, log),
		Unit:               catalog.NewUnitRepo(db, log),
		Building:           catalog.NewBuildingRepo(db, log),
		FloorPlan:          catalog.NewFloorPlanRepo(db, log),
		FloorPlanArea:      catalog.NewFloorPlanAreaRepo(db, log),
		Layout:             catalog.NewLayoutRepo(db, log),
		Developer:          catalog.NewDeveloperRepo(db, log),
		Location:           catalog.NewLocationRepo(db, log),
		Document:           catalog.NewDocumentRepo(db, log),
		Amenity:            catalog.NewAmenityRepo(db, log),
		Media:              catalog.NewMediaRepo(db, log),
		Translation:        catalog.NewTranslationRepo(db, log),
		Currency:           commerce.NewCurrencyRepo(db, log),
		PurchaseConditions: commerce.NewPurchaseConditionsRepo(db, log),
		PaymentStage:       commerce.NewPaymentStageRepo(db, log),
		AgentCommission:    commerce.NewAgentCommissionRepo(db, log),
		CashbackBonus:      commerce.NewCashbackBonusRepo(db, log),
		AdditionalExpense:  commerce.NewAdditionalExpenseRepo(db, log),
		ImportBatch:        imports.NewImportBatchRepo(db, log),
		UnitVersion:        imports.NewUnitVersionRepo(db, log),
		User:               account.NewUserRepo(db, log),
		Assignment:         account.NewAssignmentRepo(db, log),
	}
}
