package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Travelora/travelora_backend/models"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRequireUserType(t *testing.T) {
	tests := []struct {
		name       string
		userType   string
		allowed    []string
		wantStatus int
	}{
		{"allowed type", models.UserTypeServiceProvider, []string{models.UserTypeServiceProvider}, http.StatusOK},
		{"one of several", models.UserTypeTraveler, []string{models.UserTypeServiceProvider, models.UserTypeTraveler}, http.StatusOK},
		{"wrong type", models.UserTypeTraveler, []string{models.UserTypeServiceProvider}, http.StatusForbidden},
		{"missing type", "", []string{models.UserTypeServiceProvider}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t)
			if tt.userType != "" {
				c.Set("userType", tt.userType)
			}

			err := RequireUserType(tt.allowed...)(okHandler)(c)
			if err != nil {
				t.Fatalf("middleware returned error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{"admin", models.RoleAdmin, http.StatusOK},
		{"regular user", models.RoleUser, http.StatusForbidden},
		{"agent", models.RoleAgent, http.StatusForbidden},
		{"missing role", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t)
			if tt.role != "" {
				c.Set("role", tt.role)
			}

			err := RequireAdmin()(okHandler)(c)
			if err != nil {
				t.Fatalf("middleware returned error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
