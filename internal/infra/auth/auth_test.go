package auth

import (
	"errors"
	"testing"

	"github.com/tunasmustika/kasir/internal/domain"
)

func newTestAuth() *Static {
	return NewStatic([]Credential{
		{Username: "admin", Password: "admin123", Role: domain.RoleAdmin},
		{Username: "kasir", Password: "kasir123", Role: domain.RoleKasir},
	})
}

func TestAuthenticate(t *testing.T) {
	a := newTestAuth()

	tests := []struct {
		name     string
		username string
		password string
		wantRole domain.Role
		wantErr  bool
	}{
		{"admin ok", "admin", "admin123", domain.RoleAdmin, false},
		{"kasir ok", "kasir", "kasir123", domain.RoleKasir, false},
		{"wrong password", "admin", "kasir123", "", true},
		{"unknown user", "owner", "admin123", "", true},
		{"empty credentials", "", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := a.Authenticate(tt.username, tt.password)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidCredentials) {
					t.Fatalf("Authenticate() error = %v, want ErrInvalidCredentials", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate() error: %v", err)
			}
			if role != tt.wantRole {
				t.Errorf("role = %s, want %s", role, tt.wantRole)
			}
		})
	}
}
