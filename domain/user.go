package domain

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an operator account guarding the HR routes. The importer itself
// never touches this table; a default admin is seeded at migration time.
type User struct {
	UserID    int        `gorm:"primaryKey;autoIncrement" json:"user_id"`
	Username  string     `gorm:"type:varchar(100);unique;not null" json:"username" valid:"required~Username is required"`
	Name      string     `gorm:"type:varchar(150);not null" json:"name"`
	Password  string     `gorm:"type:varchar(200);not null" json:"-" valid:"required~Password is required"`
	Role      string     `gorm:"type:user_role_enum;not null" json:"role" valid:"in(admin|staff)~Invalid role"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at"`
}

func (User) TableName() string {
	return "users"
}

type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type UserRepo interface {
	FindUserByUsername(ctx context.Context, username string) (*User, error)
}

type UserUseCase interface {
	Login(ctx context.Context, username, password string) (*string, error)
}
