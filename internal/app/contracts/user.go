package contracts

import (
	"context"
	"jazaidoc-service/internal/app/models"
	"jazaidoc-service/internal/pkg/dto/requests"
	"jazaidoc-service/internal/pkg/dto/responses"
)

type UserRepository interface {
	// FindByLogin matches case-insensitively and returns nil, nil when no account exists.
	FindByLogin(ctx context.Context, login string) (*models.UserAccount, error)
	// GetClinicID returns "" for unknown logins and for accounts without a clinic.
	GetClinicID(ctx context.Context, login string) (string, error)
	List(ctx context.Context) ([]models.UserAccount, error)
	Create(ctx context.Context, user *models.UserAccount) error
	UpdatePasswordHash(ctx context.Context, user *models.UserAccount, passwordHash string) error
	Deactivate(ctx context.Context, user *models.UserAccount) error
	EnsureSheet(ctx context.Context) error
}

type UserUsecase interface {
	ListUsers(ctx context.Context) ([]responses.UserAccount, error)
	CreateUser(ctx context.Context, request *requests.CreateUser) (*responses.UserAccount, error)
	DeactivateUser(ctx context.Context, login string) error
}
