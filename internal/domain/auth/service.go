package auth

import (
	"context"
)

// Service authenticates employees for the attendance endpoints
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
