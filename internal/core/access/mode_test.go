package access

import (
	"errors"
	"testing"

	"github.com/airhost/ops/internal/core/domain"
)

func TestCheckModeSwitch(t *testing.T) {
	admin := &domain.User{Role: domain.RoleAdmin, CanLandlord: true, CanService: true}
	landlord := &domain.User{Role: domain.RoleLandlord, CanLandlord: true}
	dual := &domain.User{Role: domain.RoleLandlord, CanLandlord: true, CanService: true}
	worker := &domain.User{Role: domain.RoleService, CanService: true}

	tests := []struct {
		name string
		user *domain.User
		mode domain.Mode
		want error
	}{
		{"admin", admin, domain.ModeService, domain.ErrInvalidOperation},
		{"landlord to service", landlord, domain.ModeService, domain.ErrForbidden},
		{"landlord to landlord", landlord, domain.ModeLandlord, nil},
		{"worker to landlord", worker, domain.ModeLandlord, domain.ErrForbidden},
		{"dual to service", dual, domain.ModeService, nil},
		{"dual to landlord", dual, domain.ModeLandlord, nil},
		{"unknown mode", dual, domain.Mode("ADMIN"), domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckModeSwitch(tt.user, tt.mode)
			if tt.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
