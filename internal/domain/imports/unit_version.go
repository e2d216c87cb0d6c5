package imports

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrImmutable is returned by hooks when code tries to modify a UnitVersion.
var ErrImmutable = errors.New("unit versions are immutable")

type ImportBatch struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Source      string     `gorm:"not null;column:source" json:"source"`
	CreatedByID *uuid.UUID `gorm:"type:uuid;column:created_by_id" json:"createdById,omitempty"`
	UnitCount   int        `gorm:"not null;column:unit_count" json:"unitCount"`
	CreatedAt   time.Time  `gorm:"not null" json:"createdAt"`
}

func (ImportBatch) TableName() string { return "import_batch" }

func (b *ImportBatch) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// UnitVersion is an append-only point-in-time snapshot of a unit taken during an import.
type UnitVersion struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UnitID        uuid.UUID      `gorm:"type:uuid;not null;index;column:unit_id" json:"unitId"`
	ImportBatchID uuid.UUID      `gorm:"type:uuid;not null;index;column:import_batch_id" json:"importBatchId"`
	Snapshot      datatypes.JSON `gorm:"not null;column:snapshot" json:"snapshot"`
	CreatedAt     time.Time      `gorm:"not null" json:"createdAt"`
}

func (UnitVersion) TableName() string { return "unit_version" }

func (v *UnitVersion) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (*UnitVersion) BeforeUpdate(*gorm.DB) error { return ErrImmutable }

func (*UnitVersion) BeforeDelete(*gorm.DB) error { return ErrImmutable }
