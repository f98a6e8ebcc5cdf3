package domain

// DesignationType mirrors the designation_type_enum Postgres enum.
type DesignationType string

const (
	DesignationAcademic       DesignationType = "academic"
	DesignationAdministrative DesignationType = "administrative"
)

// Designation is an append-only reference table shared by many Faculty
// rows, unique by (title, type). The import pipeline creates rows lazily
// and never deletes them.
type Designation struct {
	DesignationID int             `gorm:"primaryKey;autoIncrement" json:"designation_id"`
	Title         string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_designation_title_type" json:"title" valid:"required~Designation title is required"`
	Type          DesignationType `gorm:"type:designation_type_enum;not null;uniqueIndex:idx_designation_title_type" json:"type"`
}

func (Designation) TableName() string {
	return "designation"
}
