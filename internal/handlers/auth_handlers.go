package handlers

import (
	"errors"
	"net/http"
	"time"

	"kasirhub/internal/caching"
	"kasirhub/internal/common"
	"kasirhub/internal/middleware"
	"kasirhub/internal/models"
	"kasirhub/internal/repositories"
	"kasirhub/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	loginAttemptLimit  = 5
	loginAttemptWindow = time.Minute
)

// AuthHandlers handles login, registration and session endpoints.
type AuthHandlers struct {
	authService services.AuthService
	userRepo    repositories.UserRepository
	partnerRepo repositories.PartnerRepository
	cacheSvc    caching.CacheService
}

func NewAuthHandlers(authService services.AuthService, userRepo repositories.UserRepository, partnerRepo repositories.PartnerRepository, cacheSvc caching.CacheService) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		userRepo:    userRepo,
		partnerRepo: partnerRepo,
		cacheSvc:    cacheSvc,
	}
}

// Login handles POST /auth/login. The response carries redirect_to so
// clients land on the dashboard matching the user's role.
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Username, "username"); err != nil {
		return common.SendValidationError(c, "username", err.Error())
	}
	if err := common.ValidateRequiredString(req.Password, "password"); err != nil {
		return common.SendValidationError(c, "password", err.Error())
	}

	limited, err := h.cacheSvc.IsRateLimited(ctx, "login:"+req.Username, loginAttemptLimit, loginAttemptWindow)
	if err != nil {
		c.Logger().Warnf("rate limit check failed for %s: %v", req.Username, err)
	} else if limited {
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many login attempts, try again later")
	}

	tokens, redirectTo, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrNoDashboardRole) {
			return echo.NewHTTPError(http.StatusForbidden, "Account role has no dashboard access")
		}
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"token":       tokens,
		"redirect_to": redirectTo,
	})
}

// Register handles POST /auth/register. It creates a partner record and
// its owner account in one step and sends the verification code.
func (h *AuthHandlers) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		BusinessName string `json:"business_name"`
		OwnerName    string `json:"owner_name"`
		Email        string `json:"email"`
		Phone        string `json:"phone"`
		Username     string `json:"username"`
		Password     string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.BusinessName, "business_name"); err != nil {
		return common.SendValidationError(c, "business_name", err.Error())
	}
	if err := common.ValidateRequiredString(req.OwnerName, "owner_name"); err != nil {
		return common.SendValidationError(c, "owner_name", err.Error())
	}
	if err := common.ValidateRequiredString(req.Email, "email"); err != nil {
		return common.SendValidationError(c, "email", err.Error())
	}
	if err := common.ValidatePhone(req.Phone, "phone"); err != nil {
		return common.SendValidationError(c, "phone", err.Error())
	}
	if err := common.ValidateRequiredString(req.Username, "username"); err != nil {
		return common.SendValidationError(c, "username", err.Error())
	}
	if err := common.ValidatePassword(req.Password); err != nil {
		return common.SendValidationError(c, "password", err.Error())
	}

	if _, err := h.partnerRepo.GetByEmail(ctx, req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Email is already registered")
	}
	if _, err := h.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Username is already taken")
	}

	passwordHash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	partner := &models.Partner{
		ID:           uuid.New(),
		BusinessName: req.BusinessName,
		OwnerName:    req.OwnerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Status:       models.PartnerStatusActive,
		JoinedAt:     time.Now(),
	}
	if err := h.partnerRepo.Create(ctx, partner); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user := &models.User{
		ID:           uuid.New(),
		PartnerID:    &partner.ID,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         models.RoleSuperAdmin,
		Status:       "active",
	}
	if err := h.userRepo.Create(ctx, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if _, err := h.authService.SendVerificationCode(ctx, user); err != nil {
		c.Logger().Warnf("failed to issue verification code for %s: %v", user.Email, err)
	}

	tokens, err := h.authService.GenerateTokens(ctx, user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":     "Registration successful, verify your email",
		"partner":     partner,
		"user":        user,
		"token":       tokens,
		"redirect_to": "/mitra",
	})
}

// VerifyEmail handles POST /auth/verify-email.
func (h *AuthHandlers) VerifyEmail(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Code, "code"); err != nil {
		return common.SendValidationError(c, "code", err.Error())
	}

	if err := h.authService.VerifyEmail(ctx, userID, req.Code); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Email verified",
	})
}

// RefreshToken handles POST /auth/refresh.
func (h *AuthHandlers) RefreshToken(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.RefreshToken, "refresh_token"); err != nil {
		return common.SendValidationError(c, "refresh_token", err.Error())
	}

	tokens, err := h.authService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	return c.JSON(http.StatusOK, tokens)
}

// Logout handles POST /auth/logout by deny-listing the current token.
func (h *AuthHandlers) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	claims, ok := token.Claims.(*middleware.JWTCustomClaims)
	if !ok || claims.ExpiresAt == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	if err := h.authService.RevokeToken(ctx, claims.TokenID, claims.ExpiresAt.Time); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Logged out",
	})
}

// Me handles GET /auth/me.
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	dashboard, _ := models.DashboardPath(user.Role)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":        user,
		"redirect_to": dashboard,
	})
}
