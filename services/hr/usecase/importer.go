package usecase

import (
	"context"
	"ohcm/domain"
	"time"
)

type hrImportUseCase struct {
	repo    domain.HRImportRepo
	TimeOut time.Duration
}

func NewHRImportUseCase(repo domain.HRImportRepo, to time.Duration) domain.HRImportUseCase {
	return &hrImportUseCase{
		repo:    repo,
		TimeOut: to,
	}
}

func (hiu *hrImportUseCase) ImportFaculty(ctx context.Context, rows []domain.ImportRow) (*domain.ImportReport, error) {
	ctx, cancel := context.WithTimeout(ctx, hiu.TimeOut)
	defer cancel()

	report, err := hiu.repo.ImportFaculty(ctx, rows)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (hiu *hrImportUseCase) GetAllFaculty(ctx context.Context) (*[]domain.Faculty, error) {
	ctx, cancel := context.WithTimeout(ctx, hiu.TimeOut)
	defer cancel()

	v, err := hiu.repo.GetAllFaculty(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}
