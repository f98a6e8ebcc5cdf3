package domain

import (
	"time"
)

// Person is the identity record every other HR entity hangs off.
// CNIC is persisted encrypted by the repository layer; the column is wide
// enough to hold the ciphertext.
type Person struct {
	PersonID          int             `gorm:"primaryKey;autoIncrement" json:"person_id"`
	FirstName         string          `gorm:"type:varchar(50);not null" json:"first_name" valid:"required~First name is required"`
	LastName          string          `gorm:"type:varchar(50);not null" json:"last_name" valid:"required~Last name is required"`
	FatherHusbandName string          `gorm:"type:varchar(100)" json:"father_husband_name"`
	Sex               string          `gorm:"type:varchar(10);not null" json:"sex"`
	DoB               *time.Time      `gorm:"type:date" json:"dob"`
	CNIC              string          `gorm:"column:cnic;type:varchar(200);unique" json:"cnic"`
	CNICExpiry        *time.Time      `gorm:"column:cnic_expiry;type:date" json:"cnic_expiry"`
	Phone             string          `gorm:"type:varchar(50)" json:"phone"`
	Email             string          `gorm:"type:varchar(200)" json:"email"`
	BloodGroup        string          `gorm:"type:varchar(10)" json:"blood_group"`
	MaritalStatus     string          `gorm:"type:varchar(20)" json:"marital_status"`
	DateOfMarriage    *time.Time      `gorm:"type:date" json:"date_of_marriage"`
	NoOfDependents    int             `json:"no_of_dependents"`
	Age               *int            `gorm:"-" json:"age,omitempty"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	Faculty           *Faculty        `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"faculty,omitempty" valid:"-"`
	Qualifications    []Qualification `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"qualifications,omitempty" valid:"-"`
}

func (Person) TableName() string {
	return "person"
}

// DeriveAge computes the age from DoB; nil when the row only carries the
// sentinel date. Read paths assign the result to Age before serializing.
func (p *Person) DeriveAge() *int {
	if p.DoB == nil {
		return nil
	}
	if p.DoB.Year() == 1900 && p.DoB.Month() == time.January && p.DoB.Day() == 1 {
		return nil
	}
	today := time.Now()
	age := today.Year() - p.DoB.Year()
	if today.Month() < p.DoB.Month() || (today.Month() == p.DoB.Month() && today.Day() < p.DoB.Day()) {
		age--
	}
	return &age
}
