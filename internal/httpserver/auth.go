package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mkrishnan-dev/quickbasket/internal/hash"
	"github.com/mkrishnan-dev/quickbasket/internal/logging"
	"github.com/mkrishnan-dev/quickbasket/internal/models"
	"github.com/mkrishnan-dev/quickbasket/internal/mykafka"
	"github.com/mkrishnan-dev/quickbasket/internal/service"
)

type AuthHandler struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
	Producer      *mykafka.Producer
}

func (h *AuthHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(event["userID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if len(req.Username) < 3 || len(req.Password) < 6 {
		l.Warn("register_failed", "status", 400, "reason", "weak credentials")
		return echo.NewHTTPError(http.StatusBadRequest, "username must be at least 3 and password at least 6 characters")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	var existing models.User
	if err := h.DB.Where("username = ?", req.Username).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			l.Error("register_error", "status", 500, "reason", "db_error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	} else {
		l.Warn("register_failed", "status", 409, "reason", "user_exists")
		return echo.NewHTTPError(http.StatusConflict, "user already exists")
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         "user",
	}
	if err := h.DB.Create(&user).Error; err != nil {
		l.Error("register_failed", "status", 500, "reason", "db_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	l.Info("register_success", "status", 200)
	return c.JSON(http.StatusOK, echo.Map{
		"id": user.ID, "username": user.Username, "role": user.Role,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		l.Warn("login_failed", "status", 401, "reason", "invalid username or password")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "status", 401, "reason", "invalid username or password")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}

	access, err := service.SignAccessToken(user.ID, user.Role, h.JWTSecret)
	if err != nil {
		l.Error("login_error", "status", 500, "reason", "cannot sign access token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	refresh, err := service.SignRefreshToken(user.ID, user.Role, h.RefreshSecret)
	if err != nil {
		l.Error("login_error", "status", 500, "reason", "cannot sign refresh token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if err := service.SaveRefreshToken(h.DB, refresh, user.ID); err != nil {
		l.Error("login_error", "status", 500, "reason", "cannot persist refresh token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	c.SetCookie(service.CreateCookie("accessToken", access, "/", time.Now().Add(service.AccessTokenTTL)))
	c.SetCookie(service.CreateCookie("refreshToken", refresh, "/", time.Now().Add(service.RefreshTokenTTL)))

	l.Info("login_success", "status", 200)
	return c.JSON(http.StatusOK, echo.Map{
		"id": user.ID, "username": user.Username, "role": user.Role,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if rfCookie, err := c.Cookie("refreshToken"); err == nil {
		ts := service.TokenService{DB: h.DB, JWTSecret: h.JWTSecret, RefreshSecret: h.RefreshSecret}
		if err := ts.RevokeRefresh(rfCookie.Value); err != nil {
			c.Logger().Errorf("revoke refresh error: %v", err)
		}
	}
	expired := time.Now().Add(-time.Hour)
	c.SetCookie(service.CreateCookie("accessToken", "", "/", expired))
	c.SetCookie(service.CreateCookie("refreshToken", "", "/", expired))
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}
