package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	articledomain "github.com/openfaktura/backend/internal/article/domain"
	companydomain "github.com/openfaktura/backend/internal/company/domain"
	invoicedomain "github.com/openfaktura/backend/internal/invoice/domain"
	tenantdomain "github.com/openfaktura/backend/internal/tenant/domain"
	"github.com/openfaktura/backend/pkg/db"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"company not found", companydomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"article not found", articledomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"invoice company missing", invoicedomain.ErrCompanyNotFound, http.StatusNotFound, "not_found"},
		{"invalid vat code", articledomain.ErrInvalidVatCode, http.StatusBadRequest, "validation_error"},
		{"invalid business type", companydomain.ErrInvalidBusinessType, http.StatusBadRequest, "validation_error"},
		{"tenant in use", tenantdomain.ErrInUse, http.StatusConflict, "conflict"},
		{"storage failure", errors.New("disk on fire"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantType, payload.Type)
		})
	}
}

func TestMapError_ConflictNamesField(t *testing.T) {
	err := db.NewConflictError("vatNumber", "A company with this VAT Number already exists")

	status, payload := mapError(err)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "conflict", payload.Type)
	assert.Equal(t, "A company with this VAT Number already exists", payload.Message)
	assert.Equal(t, "vatNumber", payload.Errors[0].Field)
}

func TestMapError_ArticleNotFoundKeepsID(t *testing.T) {
	status, payload := mapError(&invoicedomain.ArticleNotFoundError{ArticleID: 42})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Article with ID 42 not found", payload.Message)
}
