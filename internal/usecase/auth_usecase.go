package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"station-attendance-backend/config"
	"station-attendance-backend/internal/model"
	"station-attendance-backend/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthUsecase struct {
	officers repository.OfficerRepository
}

func NewAuthUsecase(officers repository.OfficerRepository) *AuthUsecase {
	return &AuthUsecase{officers: officers}
}

// Login checks the NIP/password pair and issues a 24h HMAC token carrying the
// claims the middleware forwards to handlers.
func (u *AuthUsecase) Login(ctx context.Context, nip, password string) (string, *model.Officer, error) {
	officer, err := u.officers.FindByNIP(ctx, nip)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !officer.IsActive {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(officer.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"user_id":    officer.ID,
		"nip":        officer.NIP,
		"role":       officer.Role,
		"station_id": officer.StationID,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.GetEnv("JWT_SECRET", "change-me")))
	if err != nil {
		return "", nil, err
	}
	return signed, officer, nil
}
