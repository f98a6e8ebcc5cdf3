package domain

import (
	"time"
)

// Faculty extends a Person with the employment record. Code and the
// university email are globally unique; a Faculty row cannot outlive its
// Person.
type Faculty struct {
	FacultyID       int          `gorm:"primaryKey;autoIncrement" json:"faculty_id"`
	Code            int          `gorm:"unique;not null" json:"code" valid:"required~Faculty code is required"`
	Title           string       `gorm:"type:varchar(100);not null" json:"title"`
	UniversityEmail *string      `gorm:"type:varchar(100);unique" json:"university_email"`
	DesignationID   *int         `json:"designation_id"`
	Designation     *Designation `gorm:"foreignKey:DesignationID;constraint:OnDelete:SET NULL" json:"designation,omitempty" valid:"-"`
	Status          string       `gorm:"type:varchar(20);not null" json:"status"`
	PersonID        int          `gorm:"not null" json:"person_id"`
	Person          *Person      `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"person,omitempty" valid:"-"`
	DateOfJoining   *time.Time   `gorm:"type:date" json:"date_of_joining"`
	CreatedAt       time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Faculty) TableName() string {
	return "faculty"
}
