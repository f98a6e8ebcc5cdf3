package domain

// Qualification is one degree or professional certification owned by a
// Person. Uniqueness of (person_id, title) is enforced by the import
// orchestrator, not the schema, so re-importing a file stays idempotent.
type Qualification struct {
	QualificationID int    `gorm:"primaryKey;autoIncrement" json:"qualification_id"`
	PersonID        int    `gorm:"not null;index" json:"person_id"`
	Category        string `gorm:"type:varchar(30);not null" json:"category"`
	Title           string `gorm:"type:varchar(100);not null" json:"title" valid:"required~Qualification title is required"`
	Institution     string `gorm:"type:varchar(150)" json:"institution"`
	Country         string `gorm:"type:varchar(100)" json:"country"`
	Year            *int   `json:"year"`
}

func (Qualification) TableName() string {
	return "qualification"
}
