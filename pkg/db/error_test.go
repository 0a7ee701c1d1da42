package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"postgres", errors.New(`ERROR: duplicate key value violates unique constraint "ux_companies_vat_number" (SQLSTATE 23505)`), true},
		{"mysql", errors.New("Error 1062 (23000): Duplicate entry 'x' for key 'ux_companies_vat_number'"), true},
		{"sqlite", errors.New("UNIQUE constraint failed: companies.vat_number"), true},
		{"unrelated", errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDuplicateKeyErr(tc.err))
		})
	}
}

func TestDuplicateKeyConstraint(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "ux_companies_fiscal_number"}
	assert.Equal(t, "ux_companies_fiscal_number", DuplicateKeyConstraint(pgErr))

	assert.Equal(t, "ux_companies_vat_number", DuplicateKeyConstraint(
		errors.New(`ERROR: duplicate key value violates unique constraint "ux_companies_vat_number" (SQLSTATE 23505)`),
	))
	assert.Equal(t, "companies.business_number", DuplicateKeyConstraint(
		errors.New("UNIQUE constraint failed: companies.business_number"),
	))
	assert.Equal(t, "ux_companies_vat_number", DuplicateKeyConstraint(
		errors.New("Error 1062 (23000): Duplicate entry 'x' for key 'ux_companies_vat_number'"),
	))
	assert.Equal(t, "", DuplicateKeyConstraint(errors.New("connection refused")))
	assert.Equal(t, "", DuplicateKeyConstraint(nil))
}
