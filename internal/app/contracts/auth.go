package contracts

import (
	"context"
	"jazaidoc-service/internal/pkg/dto/requests"
	"jazaidoc-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	Login(ctx context.Context, request *requests.Login) (*responses.Login, error)
}
