package postgres

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgErrorHelpers(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "orders_order_number_key"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isUniqueViolation(unique))
	assert.Equal(t, orderNumberConstraint, violatedConstraint(unique))
	assert.False(t, isUniqueViolation(fk))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isUniqueViolation(errors.New("23505 en el texto no cuenta")))
	assert.Empty(t, violatedConstraint(errors.New("x")))
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("3f1c1b9e-6a57-4c8f-9a53-5cf0a1a0c9d1"))
	assert.False(t, validID("bpc-157"))
	assert.False(t, validID(""))
}

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db?sslmode=disable", pgx5URL("postgres://u:p@h:5432/db?sslmode=disable"))
	assert.Equal(t, "pgx5://u@h/db", pgx5URL("postgresql://u@h/db"))
	assert.Equal(t, "pgx5://ya", pgx5URL("pgx5://ya"))
}

func TestMigracionesEmbebidas(t *testing.T) {
	ups, err := fs.Glob(migrationFS, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationFS, "migrations/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups), "cada migración tiene su down")

	initSQL, err := migrationFS.ReadFile("migrations/000001_init.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(initSQL), "UNIQUE (user_id, product_id)")
	assert.Contains(t, string(initSQL), "CONSTRAINT "+orderNumberConstraint)
}
