// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/config"
	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/models"
	"github.com/musichub/musichub-backend/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
	now Clock
}

type LoginRequest struct {
	// Login is either the username or the e-mail address.
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username  string      `json:"username" validate:"required,username"`
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,strong_password"`
	Role      domain.Role `json:"role" validate:"required,role"`
	StageName string      `json:"stage_name,omitempty" validate:"omitempty,max=100"`
	Bio       string      `json:"bio,omitempty" validate:"omitempty,max=2000"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"` // in seconds
}

func NewAuthService(db *gorm.DB, cfg *config.Config, now Clock) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
		now: clockOrDefault(now),
	}
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if !req.Role.SelfRegistrable() {
		return nil, domain.NewValidationError("role", "role cannot be chosen at registration")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Check if user already exists
	var existing int64
	if err := s.db.WithContext(ctx).Unscoped().Model(&models.User{}).
		Where("email = ? OR username = ?", email, req.Username).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: username or email already registered", domain.ErrConflict)
	}

	user := &models.User{
		Username:  req.Username,
		Email:     email,
		Role:      req.Role,
		StageName: strings.TrimSpace(req.StageName),
		Bio:       req.Bio,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username or email already registered", domain.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(user)
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	login := strings.TrimSpace(req.Login)

	var user models.User
	if err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, strings.ToLower(login)).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Update last login time
	now := s.now()
	user.LastLoginAt = &now
	if err := s.db.WithContext(ctx).Model(&user).Update("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	return s.issueTokens(&user)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	userIDStr, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", ErrInvalidCredentials)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", ErrInvalidCredentials)
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, lookupError(err, "user")
	}
	return &user, nil
}

func (s *AuthService) issueTokens(user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(user.ID, user.Username, string(user.Role), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID, s.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.cfg.JWT.AccessTokenTTL * 3600, // Convert hours to seconds
	}, nil
}
