// promote_admin marca un usuario como administrador (is_admin = true).
//
// Uso: go run ./cmd/promote_admin <email> [password]
// Si el email no existe y se pasa password, crea el usuario ya como admin.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/peptide-store/internal/application/auth"
	"github.com/jhoicas/peptide-store/internal/domain/entity"
	"github.com/jhoicas/peptide-store/internal/infrastructure/postgres"
	"github.com/jhoicas/peptide-store/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: promote_admin <email> [password]")
		os.Exit(2)
	}
	email := auth.NormalizeEmail(os.Args[1])
	password := ""
	if len(os.Args) > 2 {
		password = os.Args[2]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, config.LoadDB())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	users := postgres.NewUserRepository(pool)

	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Buscar usuario: %v\n", err)
		os.Exit(1)
	}

	if user != nil {
		if err := users.UpdateAccess(ctx, user.ID, user.Status, true); err != nil {
			fmt.Fprintf(os.Stderr, "Promover usuario: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s ahora es administrador (status=%s)\n", email, user.Status)
		return
	}

	if password == "" {
		fmt.Fprintf(os.Stderr, "El usuario %s no existe; pase un password para crearlo\n", email)
		os.Exit(1)
	}
	if auth.PasswordTooShort(password) {
		fmt.Fprintf(os.Stderr, "El password debe tener al menos %d caracteres\n", auth.MinPasswordLength)
		os.Exit(1)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hash password: %v\n", err)
		os.Exit(1)
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		LastName:     "Store",
		IsAdmin:      true,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, admin); err != nil {
		fmt.Fprintf(os.Stderr, "Crear administrador: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Administrador %s creado (id=%s)\n", email, admin.ID)
}
