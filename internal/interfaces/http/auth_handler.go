package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/peptide-store/internal/application/auth"
	"github.com/jhoicas/peptide-store/internal/application/dto"
	"github.com/jhoicas/peptide-store/pkg/logger"
)

// AuthHandler maneja registro, login, logout y la sesión actual.
type AuthHandler struct {
	uc           *auth.AuthUseCase
	cookieSecure bool
	log          *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookieSecure bool, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, cookieSecure: cookieSecure, log: log}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, firstName, lastName"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	setSessionCookie(c, resp.Token, h.uc.SessionTTL(), h.cookieSecure)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	setSessionCookie(c, resp.Token, h.uc.SessionTTL(), h.cookieSecure)
	return c.JSON(resp)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Expira la cookie de sesión. Siempre responde 200.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearSessionCookie(c, h.cookieSecure)
	return c.JSON(fiber.Map{"success": true})
}

// Me godoc
// @Summary      Usuario actual
// @Description  Devuelve user=null si no hay sesión válida o la cuenta ya no existe.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.CurrentUserResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := h.uc.CurrentUser(c.UserContext(), c.Cookies(SessionCookieName))
	return c.JSON(dto.CurrentUserResponse{User: user})
}
