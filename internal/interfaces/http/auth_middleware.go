package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/peptide-store/internal/application/auth"
	"github.com/jhoicas/peptide-store/internal/application/dto"
)

// SessionCookieName cookie HttpOnly que transporta el token de sesión.
const SessionCookieName = "auth-token"

// Locals keys de la sesión en Fiber.
const (
	LocalUserID    = "user_id"
	LocalUserEmail = "user_email"
)

// sessionVerifier lo implementa *auth.AuthUseCase.
type sessionVerifier interface {
	VerifySession(token string) (*auth.Session, bool)
}

// adminChecker lo implementa *auth.AuthUseCase; la interfaz permite probar el gate aislado.
type adminChecker interface {
	IsAdmin(ctx context.Context, token string) bool
}

// SessionMiddleware lee la cookie de sesión y, si es válida, carga user_id y email en
// c.Locals. Nunca corta la petición: sin sesión válida el visitante es anónimo.
func SessionMiddleware(v sessionVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sess, ok := v.VerifySession(c.Cookies(SessionCookieName)); ok {
			c.Locals(LocalUserID, sess.UserID)
			c.Locals(LocalUserEmail, sess.Email)
		}
		return c.Next()
	}
}

// RequireSession responde 401 si SessionMiddleware no encontró una sesión válida.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUserID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "inicie sesión para continuar",
			})
		}
		return c.Next()
	}
}

// RequireAdmin consulta is_admin en la DB antes de cualquier acceso a datos.
// Sin sesión, sesión inválida, usuario no admin o error de DB → 403 FORBIDDEN.
func RequireAdmin(checker adminChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !checker.IsAdmin(c.UserContext(), c.Cookies(SessionCookieName)) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "se requieren permisos de administrador",
			})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID de la sesión ("" para visitantes anónimos).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetUserEmail devuelve el email de la sesión.
func GetUserEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserEmail).(string)
	return s
}

// setSessionCookie emite la cookie de sesión.
func setSessionCookie(c *fiber.Ctx, token string, ttl time.Duration, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// clearSessionCookie expira la cookie en el navegador.
func clearSessionCookie(c *fiber.Ctx, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
