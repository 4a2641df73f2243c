package server

import (
	"net/http"
	"testing"

	orderdomain "github.com/smallbiznis/sentra/internal/order/domain"
	"github.com/stretchr/testify/require"
)

func TestMapErrorListsMissingOrderFields(t *testing.T) {
	status, payload := mapError(&orderdomain.MissingFieldsError{
		Fields: []string{"customer", "order_date"},
	})

	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "validation_error", payload.Type)
	require.Equal(t, "missing required fields: customer, order_date", payload.Message)
	require.Len(t, payload.Errors, 2)
	require.Equal(t, "customer", payload.Errors[0].Field)
	require.Equal(t, "required", payload.Errors[0].Code)
	require.Equal(t, "order_date", payload.Errors[1].Field)
}

func TestMapErrorReportsCreationStage(t *testing.T) {
	status, payload := mapError(&orderdomain.OrderCreationError{
		Stage: "items",
		Err:   orderdomain.ErrMissingStoreField,
	})

	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, "order_creation_failed", payload.Type)
	require.Equal(t, "order creation failed at items: missing_store_field", payload.Message)
}
