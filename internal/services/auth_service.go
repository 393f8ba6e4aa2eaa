package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"kasirhub/internal/caching"
	"kasirhub/internal/middleware"
	"kasirhub/internal/models"
	"kasirhub/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
	"golang.org/x/crypto/bcrypt"
)

// ErrNoDashboardRole marks credentials that checked out but whose stored
// role maps to no dashboard. Callers should treat it as forbidden rather
// than unauthorized.
var ErrNoDashboardRole = errors.New("role has no dashboard")

// AuthService handles login, session tokens and email verification.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.TokenResponse, string, error)
	GenerateTokens(ctx context.Context, user *models.User) (*models.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error

	SendVerificationCode(ctx context.Context, user *models.User) (string, error)
	VerifyEmail(ctx context.Context, userID uuid.UUID, code string) error

	HashPassword(password string) (string, error)
}

type authService struct {
	userRepo   repositories.UserRepository
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	tokenTTL   int // seconds
	refreshTTL int // seconds
}

func NewAuthService(userRepo repositories.UserRepository, cacheSvc caching.CacheService, jwtSecret string, tokenTTLSeconds, refreshTTLSeconds int) AuthService {
	return &authService{
		userRepo:   userRepo,
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTLSeconds,
		refreshTTL: refreshTTLSeconds,
	}
}

// Login verifies credentials and returns tokens plus the dashboard path
// for the user's role.
func (s *authService) Login(ctx context.Context, username, password string) (*models.TokenResponse, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid username or password")
	}

	if user.Status != "active" {
		return nil, "", fmt.Errorf("account is not active")
	}

	redirectTo, ok := models.DashboardPath(user.Role)
	if !ok {
		return nil, "", fmt.Errorf("role %q: %w", user.Role, ErrNoDashboardRole)
	}

	tokens, err := s.GenerateTokens(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return tokens, redirectTo, nil
}

// GenerateTokens signs an access token with the user's role and tenant
// scope and stores a refresh token in Redis.
func (s *authService) GenerateTokens(ctx context.Context, user *models.User) (*models.TokenResponse, error) {
	now := time.Now()
	tokenID := uuid.NewString()

	var partnerID, branchID *string
	if user.PartnerID != nil {
		v := user.PartnerID.String()
		partnerID = &v
	}
	if user.BranchID != nil {
		v := user.BranchID.String()
		branchID = &v
	}

	claims := middleware.JWTCustomClaims{
		UserID:    user.ID.String(),
		PartnerID: partnerID,
		BranchID:  branchID,
		Role:      user.Role,
		TokenID:   tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "kasirhub-auth",
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings{"kasirhub-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.tokenTTL) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        tokenID,
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessTokenString, err := accessToken.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %v", err)
	}

	refreshToken := s.generateSecureToken()
	refreshTokenHash := s.hashToken(refreshToken)

	refreshTokenData := fmt.Sprintf("%s:%d", user.ID.String(), now.Unix()+int64(s.refreshTTL))
	cacheKey := fmt.Sprintf("refresh_token:%s", refreshTokenHash)
	if err := s.cacheSvc.SetString(ctx, cacheKey, refreshTokenData, time.Duration(s.refreshTTL)*time.Second); err != nil {
		log.Printf("Failed to store refresh token: %v", err)
		// Continue - token generation succeeded
	}

	return &models.TokenResponse{
		AccessToken:  accessTokenString,
		TokenType:    "Bearer",
		ExpiresIn:    s.tokenTTL,
		RefreshToken: refreshToken,
		UserID:       user.ID.String(),
		TokenID:      tokenID,
		IssuedAt:     now,
	}, nil
}

// RefreshToken exchanges a stored refresh token for a fresh token pair.
// The user record is re-read so role or tenant changes take effect.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	refreshTokenHash := s.hashToken(refreshToken)

	cacheKey := fmt.Sprintf("refresh_token:%s", refreshTokenHash)
	tokenData, err := s.cacheSvc.GetString(ctx, cacheKey)
	if err != nil || tokenData == "" {
		return nil, fmt.Errorf("invalid refresh token")
	}

	parts := strings.Split(tokenData, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid token data")
	}

	expiry, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid token expiry")
	}
	if time.Now().Unix() > expiry {
		s.cacheSvc.Delete(ctx, cacheKey)
		return nil, fmt.Errorf("refresh token expired")
	}

	userID, err := uuid.Parse(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	if user.Status != "active" {
		return nil, fmt.Errorf("account is not active")
	}

	// Rotate: old refresh token is single use
	s.cacheSvc.Delete(ctx, cacheKey)

	return s.GenerateTokens(ctx, user)
}

// RevokeToken puts the access token on the deny-list until its natural
// expiry, so logout takes effect immediately.
func (s *authService) RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	denyKey := fmt.Sprintf("token_denylist:%s", tokenID)
	return s.cacheSvc.SetString(ctx, denyKey, "revoked", ttl)
}

// SendVerificationCode issues a 6-digit code valid for 15 minutes. The
// code is returned so the caller can hand it to the mail sender.
func (s *authService) SendVerificationCode(ctx context.Context, user *models.User) (string, error) {
	code := random.String(6, random.Numeric)
	cacheKey := fmt.Sprintf("kasirhub:verify:%s", user.ID.String())
	if err := s.cacheSvc.SetString(ctx, cacheKey, code, 15*time.Minute); err != nil {
		return "", fmt.Errorf("failed to store verification code: %v", err)
	}
	return code, nil
}

func (s *authService) VerifyEmail(ctx context.Context, userID uuid.UUID, code string) error {
	cacheKey := fmt.Sprintf("kasirhub:verify:%s", userID.String())
	stored, err := s.cacheSvc.GetString(ctx, cacheKey)
	if err != nil || stored == "" {
		return fmt.Errorf("verification code expired")
	}
	if stored != code {
		return fmt.Errorf("invalid verification code")
	}

	if err := s.userRepo.MarkEmailVerified(ctx, userID); err != nil {
		return err
	}
	return s.cacheSvc.Delete(ctx, cacheKey)
}

func (s *authService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *authService) generateSecureToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return base64.URLEncoding.EncodeToString(bytes)
}

func (s *authService) hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
