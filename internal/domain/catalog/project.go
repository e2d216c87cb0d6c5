package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "DRAFT"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusArchived  ProjectStatus = "ARCHIVED"
)

type Project struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Slug               string          `gorm:"not null;uniqueIndex;column:slug" json:"slug"`
	Name               string          `gorm:"not null;column:name" json:"name"`
	Description        string          `gorm:"column:description" json:"description"`
	Status             ProjectStatus   `gorm:"not null;index;column:status" json:"status"`
	Class              string          `gorm:"column:class" json:"class,omitempty"`
	Type               string          `gorm:"column:type" json:"type,omitempty"`
	BuildingStatus     string          `gorm:"column:building_status" json:"buildingStatus,omitempty"`
	ConstructionStatus int             `gorm:"not null;column:construction_status" json:"constructionStatus"`
	CompletionDate     *time.Time      `gorm:"column:completion_date" json:"completionDate,omitempty"`
	PriceFrom          decimal.Decimal `gorm:"type:numeric(14,2);not null;column:price_from" json:"priceFrom"`
	CurrencyCode       string          `gorm:"column:currency_code" json:"currencyCode,omitempty"`
	DeveloperID        *uuid.UUID      `gorm:"type:uuid;index;column:developer_id" json:"developerId,omitempty"`
	CreatedAt          time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt          time.Time       `gorm:"not null" json:"updatedAt"`
}

func (Project) TableName() string { return "project" }

func (p *Project) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

type Location struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:project_id" json:"projectId"`
	Country   string    `gorm:"column:country" json:"country"`
	City      string    `gorm:"index;column:city" json:"city"`
	District  string    `gorm:"column:district" json:"district"`
	Address   string    `gorm:"column:address" json:"address"`
	Latitude  *float64  `gorm:"column:latitude" json:"latitude"`
	Longitude *float64  `gorm:"column:longitude" json:"longitude"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Location) TableName() string { return "location" }

func (l *Location) BeforeCreate(*gorm.DB) error {
	ensureID(&l.ID)
	return nil
}

type Developer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	LogoURL     string    `gorm:"column:logo_url" json:"logoUrl,omitempty"`
	Website     string    `gorm:"column:website" json:"website,omitempty"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func (Developer) TableName() string { return "developer" }

func (d *Developer) BeforeCreate(*gorm.DB) error {
	ensureID(&d.ID)
	return nil
}

type Amenity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code      string    `gorm:"not null;uniqueIndex;column:code" json:"code"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	Icon      string    `gorm:"column:icon" json:"icon,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Amenity) TableName() string { return "amenity" }

func (a *Amenity) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}

type ProjectAmenity struct {
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey;column:project_id" json:"projectId"`
	AmenityID uuid.UUID `gorm:"type:uuid;primaryKey;column:amenity_id" json:"amenityId"`
}

func (ProjectAmenity) TableName() string { return "project_amenity" }

type UnitAmenity struct {
	UnitID    uuid.UUID `gorm:"type:uuid;primaryKey;column:unit_id" json:"unitId"`
	AmenityID uuid.UUID `gorm:"type:uuid;primaryKey;column:amenity_id" json:"amenityId"`
}

func (UnitAmenity) TableName() string { return "unit_amenity" }

type Document struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index;column:project_id" json:"projectId"`
	Title       string    `gorm:"not null;column:title" json:"title"`
	URL         string    `gorm:"not null;column:url" json:"url"`
	StorageKey  string    `gorm:"column:storage_key" json:"-"`
	ContentType string    `gorm:"column:content_type" json:"contentType,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func (Document) TableName() string { return "document" }

func (d *Document) BeforeCreate(*gorm.DB) error {
	ensureID(&d.ID)
	return nil
}
