package usecase

import (
	"context"
	"fmt"
	"ohcm/domain"
	"ohcm/middleware"

	"golang.org/x/crypto/bcrypt"
)

type userUseCase struct {
	repo domain.UserRepo
}

func NewUserUseCase(repo domain.UserRepo) domain.UserUseCase {
	return &userUseCase{
		repo: repo,
	}
}

func (uu *userUseCase) Login(ctx context.Context, username, password string) (*string, error) {
	user, err := uu.repo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid username or password")
	}

	token, err := middleware.GenerateJWT(user.UserID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %v", err)
	}

	return &token, nil
}
