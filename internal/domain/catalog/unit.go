package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UnitStatus string

const (
	UnitStatusAvailable   UnitStatus = "AVAILABLE"
	UnitStatusReserved    UnitStatus = "RESERVED"
	UnitStatusSold        UnitStatus = "SOLD"
	UnitStatusUnavailable UnitStatus = "UNAVAILABLE"
)

type Unit struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Slug         string          `gorm:"not null;uniqueIndex;column:slug" json:"slug"`
	ProjectID    uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_unit_project_number,priority:1;column:project_id" json:"projectId"`
	BuildingID   *uuid.UUID      `gorm:"type:uuid;index;column:building_id" json:"buildingId,omitempty"`
	LayoutID     *uuid.UUID      `gorm:"type:uuid;column:layout_id" json:"layoutId,omitempty"`
	FloorPlanID  *uuid.UUID      `gorm:"type:uuid;column:floor_plan_id" json:"floorPlanId,omitempty"`
	Number       string          `gorm:"not null;uniqueIndex:idx_unit_project_number,priority:2;column:number" json:"number"`
	Status       UnitStatus      `gorm:"not null;index;column:status" json:"status"`
	Area         decimal.Decimal `gorm:"type:numeric(10,2);not null;column:area" json:"area"`
	Price        decimal.Decimal `gorm:"type:numeric(14,2);not null;column:price" json:"price"`
	CurrencyCode string          `gorm:"column:currency_code" json:"currencyCode,omitempty"`
	Bedrooms     int             `gorm:"not null;column:bedrooms" json:"bedrooms"`
	Bathrooms    int             `gorm:"not null;column:bathrooms" json:"bathrooms"`
	Floor        int             `gorm:"not null;column:floor" json:"floor"`
	Description  string          `gorm:"column:description" json:"description,omitempty"`
	CreatedAt    time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updatedAt"`
}

func (Unit) TableName() string { return "unit" }

func (u *Unit) BeforeCreate(*gorm.DB) error {
	ensureID(&u.ID)
	return nil
}

type Layout struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID       `gorm:"type:uuid;not null;index;column:project_id" json:"projectId"`
	Name      string          `gorm:"not null;column:name" json:"name"`
	Bedrooms  int             `gorm:"not null;column:bedrooms" json:"bedrooms"`
	Bathrooms int             `gorm:"not null;column:bathrooms" json:"bathrooms"`
	Area      decimal.Decimal `gorm:"type:numeric(10,2);not null;column:area" json:"area"`
	ImageURL  string          `gorm:"column:image_url" json:"imageUrl,omitempty"`
	CreatedAt time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"not null" json:"updatedAt"`
}

func (Layout) TableName() string { return "layout" }

func (l *Layout) BeforeCreate(*gorm.DB) error {
	ensureID(&l.ID)
	return nil
}

type Building struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index;column:project_id" json:"projectId"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	Floors    int       `gorm:"not null;column:floors" json:"floors"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Building) TableName() string { return "building" }

func (b *Building) BeforeCreate(*gorm.DB) error {
	ensureID(&b.ID)
	return nil
}

type FloorPlan struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BuildingID  uuid.UUID `gorm:"type:uuid;not null;index;column:building_id" json:"buildingId"`
	FloorNumber int       `gorm:"not null;column:floor_number" json:"floorNumber"`
	ImageURL    string    `gorm:"column:image_url" json:"imageUrl,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func (FloorPlan) TableName() string { return "floor_plan" }

func (f *FloorPlan) BeforeCreate(*gorm.DB) error {
	ensureID(&f.ID)
	return nil
}

// FloorPlanArea is a clickable polygon on a floor plan image, optionally bound to a unit.
type FloorPlanArea struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FloorPlanID uuid.UUID      `gorm:"type:uuid;not null;index;column:floor_plan_id" json:"floorPlanId"`
	UnitID      *uuid.UUID     `gorm:"type:uuid;column:unit_id" json:"unitId,omitempty"`
	Label       string         `gorm:"column:label" json:"label,omitempty"`
	Coordinates datatypes.JSON `gorm:"not null;column:coordinates" json:"coordinates"`
	SortOrder   int            `gorm:"not null;column:sort_order" json:"sortOrder"`
	CreatedAt   time.Time      `gorm:"not null" json:"createdAt"`
}

func (FloorPlanArea) TableName() string { return "floor_plan_area" }

func (a *FloorPlanArea) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
