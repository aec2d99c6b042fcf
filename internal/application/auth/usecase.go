package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/peptide-store/internal/application/dto"
	"github.com/jhoicas/peptide-store/internal/domain"
	"github.com/jhoicas/peptide-store/internal/domain/entity"
	"github.com/jhoicas/peptide-store/internal/domain/repository"
	"github.com/jhoicas/peptide-store/pkg/jwt"
	"github.com/jhoicas/peptide-store/pkg/logger"
)

// MinPasswordLength longitud mínima aceptada en el registro, en caracteres.
const MinPasswordLength = 6

// PasswordTooShort cuenta caracteres, no bytes: "ñññ" son 3.
func PasswordTooShort(password string) bool {
	return utf8.RuneCountInString(password) < MinPasswordLength
}

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
	BcryptCost int
}

// Session identidad extraída de un token válido.
type Session struct {
	UserID string
	Email  string
}

// AuthUseCase casos de uso de autenticación: registro, login y verificación de sesión.
// No hay almacén de sesiones: la validez es criptográfica + expiración.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if jwtCfg.BcryptCost == 0 {
		jwtCfg.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log.Named("auth"), now: time.Now}
}

// SessionTTL duración de la sesión (Max-Age de la cookie).
func (uc *AuthUseCase) SessionTTL() time.Duration {
	return time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute
}

// IssueSession firma un token con userID y email.
func (uc *AuthUseCase) IssueSession(userID, email string) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, userID, email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}

// VerifySession nunca falla hacia el caller: token vacío, malformado, con firma
// incorrecta o expirado devuelven (nil, false) y se tratan como visitante anónimo.
func (uc *AuthUseCase) VerifySession(token string) (*Session, bool) {
	if token == "" {
		return nil, false
	}
	userID, email, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, false
	}
	return &Session{UserID: userID, Email: email}, true
}

// IsAdmin verifica la sesión y consulta is_admin en la DB. Falla cerrado: cualquier
// error (token inválido, usuario inexistente o inactivo, error de DB) devuelve false.
func (uc *AuthUseCase) IsAdmin(ctx context.Context, token string) bool {
	sess, ok := uc.VerifySession(token)
	if !ok {
		return false
	}
	user, err := uc.userRepo.GetByID(ctx, sess.UserID)
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", sess.UserID).Msg("verificar admin")
		return false
	}
	if user == nil || !user.IsActive() {
		return false
	}
	return user.IsAdmin
}

// CurrentUser devuelve el usuario de la sesión o nil para visitantes anónimos.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, token string) *dto.UserResponse {
	sess, ok := uc.VerifySession(token)
	if !ok {
		return nil
	}
	user, err := uc.userRepo.GetByID(ctx, sess.UserID)
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", sess.UserID).Msg("obtener usuario actual")
		return nil
	}
	if user == nil || !user.IsActive() {
		return nil
	}
	return dto.NewUserResponse(user)
}

// Register crea un usuario con password bcrypt y abre su sesión.
// Devuelve ErrEmailAlreadyExists si el email ya existe (la fila existente no se toca).
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := NormalizeEmail(in.Email)
	firstName := normalizeName(in.FirstName)
	lastName := normalizeName(in.LastName)
	if email == "" || in.Password == "" || firstName == "" || lastName == "" {
		return nil, fmt.Errorf("%w: email, password, firstName y lastName son requeridos", domain.ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if PasswordTooShort(in.Password) {
		return nil, domain.ErrWeakPassword
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.jwtCfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Organization: normalizeName(in.Organization),
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := uc.IssueSession(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("emitir sesión: %w", err)
	}
	uc.log.Info().Str("user_id", user.ID).Msg("usuario registrado")
	return &dto.AuthResponse{User: *dto.NewUserResponse(user), Token: token}, nil
}

// Login verifica email/password, actualiza last_login_at y emite la sesión.
// Email desconocido y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son requeridos", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("comparar password: %w", err)
	}
	if !user.IsActive() {
		return nil, domain.ErrAccountDisabled
	}

	now := uc.now()
	if err := uc.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("actualizar last_login_at")
	} else {
		user.LastLoginAt = &now
	}

	token, err := uc.IssueSession(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("emitir sesión: %w", err)
	}
	return &dto.AuthResponse{User: *dto.NewUserResponse(user), Token: token}, nil
}

// NormalizeEmail recorta espacios y pasa a minúsculas. Un Caser no es seguro entre
// goroutines, por eso se crea uno por llamada.
func NormalizeEmail(email string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}

func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
