package server

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/sentra/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestSignupLoginMe(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/auth/signup", "", gin.H{
		"name":     "Jane",
		"email":    "jane@example.com",
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, s, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "jane@example.com",
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var login authdomain.TokenResult
	decodeJSON(t, w, &login)
	require.NotEmpty(t, login.Token)

	w = doJSON(t, s, http.MethodGet, "/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me authdomain.User
	decodeJSON(t, w, &me)
	require.Equal(t, "jane@example.com", me.Email)
}

func TestAPIRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/suppliers", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/suppliers", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSupplierCRUDOverHTTP(t *testing.T) {
	s := newTestServer(t)
	token := signupAndOnboard(t, s, "owner@example.com")

	w := doJSON(t, s, http.MethodPost, "/api/suppliers", token, gin.H{
		"name":  "Acme Corp",
		"phone": "555-1234",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	decodeJSON(t, w, &created)
	require.Equal(t, "Acme Corp", created.Name)

	w = doJSON(t, s, http.MethodGet, "/api/suppliers", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodPatch, "/api/suppliers/"+created.ID, token, gin.H{
		"status": "inactive",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodDelete, "/api/suppliers/"+created.ID, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/suppliers/"+created.ID, token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSupplierWithoutOrgIsMissingTenant(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/auth/signup", "", gin.H{
		"name":     "No Org",
		"email":    "noorg@example.com",
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var signup authdomain.TokenResult
	decodeJSON(t, w, &signup)

	w = doJSON(t, s, http.MethodPost, "/api/suppliers", signup.Token, gin.H{"name": "Acme"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	decodeJSON(t, w, &resp)
	require.Equal(t, "missing_tenant", resp.Error.Type)
}

func TestSalesOrderDuplicateNumberConflict(t *testing.T) {
	s := newTestServer(t)
	token := signupAndOnboard(t, s, "sales@example.com")

	body := gin.H{
		"so_number":     "SO-001",
		"customer_name": "Acme Corp",
		"order_date":    "2026-03-01T00:00:00Z",
		"items": []gin.H{
			{"product_name": "Widget", "quantity": 2, "unit_price": "10.50"},
		},
	}

	w := doJSON(t, s, http.MethodPost, "/api/selling/sales-orders", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		TotalAmount string `json:"total_amount"`
	}
	decodeJSON(t, w, &created)
	require.Equal(t, "21", created.TotalAmount)

	w = doJSON(t, s, http.MethodPost, "/api/selling/sales-orders", token, body)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestSalesOrderMissingFieldsListed(t *testing.T) {
	s := newTestServer(t)
	token := signupAndOnboard(t, s, "incomplete@example.com")

	w := doJSON(t, s, http.MethodPost, "/api/selling/sales-orders", token, gin.H{
		"so_number": "SO-010",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Type   string `json:"type"`
			Errors []struct {
				Field string `json:"field"`
				Code  string `json:"code"`
			} `json:"errors"`
		} `json:"error"`
	}
	decodeJSON(t, w, &resp)
	require.Equal(t, "validation_error", resp.Error.Type)
	require.Len(t, resp.Error.Errors, 2)
	require.Equal(t, "customer", resp.Error.Errors[0].Field)
	require.Equal(t, "required", resp.Error.Errors[0].Code)
	require.Equal(t, "order_date", resp.Error.Errors[1].Field)
}

func TestVoiceParseAnonymousWithOrg(t *testing.T) {
	s := newTestServer(t)
	token := signupAndOnboard(t, s, "voice@example.com")

	// Grab the org id through /auth/me.
	w := doJSON(t, s, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		OrgID string `json:"organization_id"`
	}
	decodeJSON(t, w, &me)

	w = doJSON(t, s, http.MethodPost, "/api/voice/parse", "", gin.H{
		"text":   "add supplier name Acme phone 555-1234",
		"org_id": me.OrgID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var intent struct {
		Module string `json:"module"`
		Ready  bool   `json:"ready"`
		Exec   *struct {
			OK bool `json:"ok"`
		} `json:"exec"`
	}
	decodeJSON(t, w, &intent)
	require.Equal(t, "buying.suppliers", intent.Module)
	require.True(t, intent.Ready)
	require.NotNil(t, intent.Exec)
	require.True(t, intent.Exec.OK)
}

func TestVoiceParseWithoutTenant(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/voice/parse", "", gin.H{
		"text": "add supplier name Acme",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var intent struct {
		Exec *struct {
			OK    bool   `json:"ok"`
			Error string `json:"error"`
		} `json:"exec"`
	}
	decodeJSON(t, w, &intent)
	require.NotNil(t, intent.Exec)
	require.False(t, intent.Exec.OK)
	require.Equal(t, "tenant required", intent.Exec.Error)
}

func TestVoiceParseRequiresText(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/voice/parse", "", gin.H{"text": "  "})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
