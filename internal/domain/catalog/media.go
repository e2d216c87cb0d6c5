package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OwnerType string

const (
	OwnerProject   OwnerType = "project"
	OwnerUnit      OwnerType = "unit"
	OwnerBuilding  OwnerType = "building"
	OwnerDeveloper OwnerType = "developer"
)

type MediaKind string

const (
	MediaKindImage MediaKind = "IMAGE"
	MediaKindVideo MediaKind = "VIDEO"
	MediaKindPlan  MediaKind = "PLAN"
)

type Media struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerType   OwnerType `gorm:"not null;index:idx_media_owner,priority:1;column:owner_type" json:"ownerType"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index:idx_media_owner,priority:2;column:owner_id" json:"ownerId"`
	URL         string    `gorm:"not null;column:url" json:"url"`
	StorageKey  string    `gorm:"column:storage_key" json:"-"`
	ContentType string    `gorm:"column:content_type" json:"contentType,omitempty"`
	Kind        MediaKind `gorm:"not null;column:kind" json:"kind"`
	SortOrder   int       `gorm:"not null;column:sort_order" json:"sortOrder"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
}

func (Media) TableName() string { return "media" }

func (m *Media) BeforeCreate(*gorm.DB) error {
	ensureID(&m.ID)
	return nil
}

// Translation holds a per-language name/description for a project, unit or developer.
type Translation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerType   OwnerType `gorm:"not null;uniqueIndex:idx_translation_owner_lang,priority:1;column:owner_type" json:"ownerType"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_translation_owner_lang,priority:2;column:owner_id" json:"ownerId"`
	Language    string    `gorm:"not null;uniqueIndex:idx_translation_owner_lang,priority:3;column:language" json:"language"`
	Name        string    `gorm:"column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func (Translation) TableName() string { return "translation" }

func (t *Translation) BeforeCreate(*gorm.DB) error {
	ensureID(&t.ID)
	return nil
}
