package repository

import (
	"context"
	"fmt"
	"ohcm/domain"
)

// GetAllFaculty lists every faculty row with its designation and person.
// CNIC is decrypted and the age derived here, at read time; neither leaves
// storage otherwise.
func (r *hrImportRepository) GetAllFaculty(ctx context.Context) (*[]domain.Faculty, error) {
	var faculties []domain.Faculty

	err := r.db.WithContext(ctx).
		Preload("Designation").
		Preload("Person").
		Find(&faculties).Error
	if err != nil {
		return nil, fmt.Errorf("could not get all faculty: %w", err)
	}

	for i := range faculties {
		if faculties[i].Person != nil {
			faculties[i].Person.CNIC = r.cipher.Decrypt(faculties[i].Person.CNIC)
			faculties[i].Person.Age = faculties[i].Person.DeriveAge()
		}
	}

	return &faculties, nil
}
