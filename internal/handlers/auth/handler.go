package auth

import (
	"net/http"
	"rentopia/config"
	"rentopia/infras/jwt"
	"rentopia/infras/otel"
	"rentopia/internal/domains/auth/model/dto"
	"rentopia/internal/domains/auth/service"
	userService "rentopia/internal/domains/user/service"
	"rentopia/shared"
	"rentopia/shared/constant"
	"rentopia/shared/failure"
	"rentopia/shared/validator"
	"rentopia/transport/http/response"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	users   userService.User
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Auth, users userService.User, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		users:   users,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.Post("/refresh-token", handler.RefreshToken)
	r.Post("/logout", handler.Logout)
	r.Get("/profile", handler.Profile)
	r.Put("/change-password", handler.ChangePassword)
}

// Register handles user registration
// @Summary Register a new user
// @Description Register a new user with the provided details.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Message "User registered successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req := dto.RegisterRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Register(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User registered successfully")

	response.WithMessage(w, http.StatusCreated, "User registered successfully")
}

// Login handles user login
// @Summary Login a user
// @Description Login with email and password. Session tokens are set as HTTP-only cookies.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} dto.LoginResponse "User logged in successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to login user")

		response.WithError(w, err)

		return
	}

	handler.setSessionCookies(w, res.Tokens)

	scope.AddEvent("User logged in successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// RefreshToken handles token refresh
// @Summary Refresh user token
// @Description Rotate the session using the refresh token cookie, or the body when no cookie is sent.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "Refresh Token Request"
// @Success 200 {object} dto.RefreshTokenResponse "Token refreshed successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	req := dto.RefreshTokenRequest{}

	if cookie, err := r.Cookie(handler.cfg.App.Cookie.RefreshName); err == nil && cookie.Value != constant.Empty {
		req.RefreshToken = cookie.Value
	} else if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh token")

		response.WithError(w, err)

		return
	}

	handler.setSessionCookies(w, res.Tokens)

	scope.AddEvent("Token refreshed successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// Logout ends the session
// @Summary Logout
// @Description Revoke the current access token and clear the session cookies.
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Message "Logged out"
// @Failure 500 {object} response.Error
// @Router /api/logout [post]
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	req := dto.LogoutRequest{}
	req.TokenID, _ = ctx.Value(constant.ContextKeyTokenID).(string)

	if expiry, ok := ctx.Value(constant.ContextKeyTokenExpiry).(time.Time); ok {
		req.Remaining = time.Until(expiry)
	}

	if err := handler.service.Logout(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to logout user")

		response.WithError(w, err)

		return
	}

	handler.clearSessionCookies(w)

	response.WithMessage(w, http.StatusOK, "Logged out")
}

// Profile returns the caller's profile
// @Summary Current user
// @Description Returns the authenticated user's profile, or null data when no valid session exists.
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.LoginResponse
// @Failure 500 {object} response.Error
// @Router /api/profile [get]
func (handler *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Profile")
	defer scope.End()

	userID, ok := shared.UserFromContext(ctx)
	if !ok {
		response.WithJSON(w, http.StatusOK, nil)

		return
	}

	res, err := handler.users.Get(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get profile")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ChangePassword replaces the caller's password.
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/change-password [put]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	userID, ok := shared.UserFromContext(ctx)
	if !ok {
		response.WithError(w, failure.Unauthorized("login required"))

		return
	}

	req := dto.ChangePasswordRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ChangePassword(ctx, req, userID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change password")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Password changed")
}

func (handler *Handler) sameSite() http.SameSite {
	switch strings.ToLower(handler.cfg.App.Cookie.SameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func (handler *Handler) cookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   handler.cfg.App.Cookie.Domain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   handler.cfg.App.Cookie.Secure,
		SameSite: handler.sameSite(),
	}
}

func (handler *Handler) setSessionCookies(w http.ResponseWriter, tokens *jwt.TokenPair) {
	if tokens == nil {
		return
	}

	http.SetCookie(w, handler.cookie(handler.cfg.App.Cookie.Name, tokens.AccessToken, tokens.AccessExpiresAt))
	http.SetCookie(w, handler.cookie(handler.cfg.App.Cookie.RefreshName, tokens.RefreshToken, tokens.RefreshExpiresAt))
}

func (handler *Handler) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{handler.cfg.App.Cookie.Name, handler.cfg.App.Cookie.RefreshName} {
		c := handler.cookie(name, constant.Empty, time.Unix(0, 0))
		c.MaxAge = -1

		http.SetCookie(w, c)
	}
}
