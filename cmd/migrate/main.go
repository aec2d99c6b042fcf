// migrate aplica o revierte las migraciones SQL embebidas.
//
// Uso: go run ./cmd/migrate [up|down|version]
// Por defecto ejecuta "up". Lee DATABASE_URL o DB_* igual que la API.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"github.com/jhoicas/peptide-store/internal/infrastructure/postgres"
	"github.com/jhoicas/peptide-store/pkg/config"
)

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	m, err := postgres.NewMigrator(config.LoadDB().ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migrador: %v\n", err)
		os.Exit(1)
	}
	defer m.Close()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		// una sola versión hacia atrás
		err = m.Steps(-1)
	case "version":
		version, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			fmt.Println("sin migraciones aplicadas")
			return
		}
		if verr != nil {
			fmt.Fprintf(os.Stderr, "Versión: %v\n", verr)
			os.Exit(1)
		}
		fmt.Printf("versión %d (dirty=%t)\n", version, dirty)
		return
	default:
		fmt.Fprintf(os.Stderr, "Comando desconocido %q. Uso: migrate [up|down|version]\n", cmd)
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		fmt.Fprintf(os.Stderr, "migrate %s: %v\n", cmd, err)
		os.Exit(1)
	}
	fmt.Printf("migrate %s: OK\n", cmd)
}
