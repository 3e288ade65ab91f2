package dto

import (
	"rentopia/infras/jwt"
	userModel "rentopia/internal/domains/user/model"
	userDto "rentopia/internal/domains/user/model/dto"
	"rentopia/shared/constant"
	gModel "rentopia/shared/model"
	"rentopia/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (r *RegisterRequest) ToUserModel(username string, hashedPassword string) userModel.User {
	now := timezone.Now()

	return userModel.User{
		ID:                 uuid.NewString(),
		Name:               strings.TrimSpace(r.Name),
		Email:              strings.ToLower(strings.TrimSpace(r.Email)),
		Password:           hashedPassword,
		Level:              constant.RoleUser,
		Active:             true,
		SubscriptionStatus: userModel.SubscriptionNone,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateLastLoginRequest is written on every successful login. Password is
// only set when the stored hash was produced with an outdated cost.
type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
	Password  string    `db:"password" json:"-"`
}

// LoginResponse carries the profile in the body. Tokens travel as cookies and are excluded from JSON.
type LoginResponse struct {
	userDto.UserResponse
	Tokens *jwt.TokenPair `json:"-"`
}

func (l *LoginResponse) FromModel(user userModel.User, tokenPair *jwt.TokenPair) {
	l.UserResponse.FromModel(user)
	l.Tokens = tokenPair
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"omitempty"`
}

type RefreshTokenResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresIn    int64          `json:"expires_in"`
	Tokens       *jwt.TokenPair `json:"-"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
	r.Tokens = tokenPair
}

type LogoutRequest struct {
	TokenID   string
	Remaining time.Duration
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}
