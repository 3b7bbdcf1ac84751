package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/airhost/ops/internal/core/domain"
	"github.com/airhost/ops/internal/core/ports"
)

func newTestAuthService(repo *stubUserRepo, denylist *stubDenylist) *AuthService {
	return NewAuthService(repo, denylist, "secret", time.Hour, discardLogger)
}

func TestAuthService_Register_Profiles(t *testing.T) {
	tests := []struct {
		kind        string
		role        domain.Role
		canLandlord bool
		canService  bool
		mode        domain.Mode
	}{
		{"", domain.RoleLandlord, true, false, domain.ModeLandlord},
		{"UTLEIER", domain.RoleLandlord, true, false, domain.ModeLandlord},
		{"TJENESTE", domain.RoleService, false, true, domain.ModeService},
		{"BEGGE", domain.RoleLandlord, true, true, domain.ModeLandlord},
	}

	for i, tt := range tests {
		t.Run("kind="+tt.kind, func(t *testing.T) {
			svc := newTestAuthService(newStubUserRepo(), &stubDenylist{})
			email := "user" + string(rune('a'+i)) + "@example.com"
			user, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Kari", Email: email, Password: "password1", Kind: tt.kind})
			if err != nil {
				t.Fatalf("Register returned error: %v", err)
			}
			if user.Role != tt.role || user.CanLandlord != tt.canLandlord || user.CanService != tt.canService || user.ActiveMode != tt.mode {
				t.Fatalf("unexpected profile: %+v", user)
			}
			if !user.IsActive {
				t.Fatalf("new users must be active")
			}
			if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password1")); err != nil {
				t.Fatalf("stored hash does not match password: %v", err)
			}
		})
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), &stubDenylist{})
	ctx := context.Background()

	cases := []ports.RegisterInput{
		{Name: "K", Email: "k@example.com", Password: "password1"},
		{Name: "Kari", Email: "not-an-email", Password: "password1"},
		{Name: "Kari", Email: "k@example.com", Password: "short"},
		{Name: "Kari", Email: "k@example.com", Password: "password1", Kind: "ADMIN"},
		{Name: "Kari", Email: "k@example.com", Password: "password1", Kind: "GUEST"},
	}
	for _, in := range cases {
		if _, err := svc.Register(ctx, in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("%+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), &stubDenylist{})
	in := ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "password1"}

	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	in.Email = "  BOB@example.com "
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, &stubDenylist{})

	registered, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Carol", Email: "carol@example.com", Password: "s3cret-pass", Kind: "TJENESTE"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "Carol@Example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != registered.ID {
		t.Fatalf("expected sub %s, got %v", registered.ID, claims["sub"])
	}
	if claims["role"] != string(domain.RoleService) {
		t.Fatalf("expected role %s, got %v", domain.RoleService, claims["role"])
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Fatalf("expected jti claim")
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, &stubDenylist{})
	ctx := context.Background()

	u, _ := svc.Register(ctx, ports.RegisterInput{Name: "Dave", Email: "dave@example.com", Password: "goodpass"})

	if _, _, err := svc.Login(ctx, "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("bad password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "ghost@example.com", "goodpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}

	repo.users[u.ID].IsActive = false
	if _, _, err := svc.Login(ctx, "dave@example.com", "goodpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("inactive user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	denylist := &stubDenylist{}
	svc := newTestAuthService(newStubUserRepo(), denylist)
	ctx := context.Background()

	if err := svc.Logout(ctx, "jti-1", time.Now().Add(30*time.Minute)); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	ttl, ok := denylist.revoked["jti-1"]
	if !ok || ttl <= 0 || ttl > 30*time.Minute {
		t.Fatalf("unexpected revocation: %v %v", ok, ttl)
	}

	if err := svc.Logout(ctx, "jti-2", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("expired token logout failed: %v", err)
	}
	if _, ok := denylist.revoked["jti-2"]; ok {
		t.Fatalf("expired token should not be stored")
	}

	if err := svc.Logout(ctx, "", time.Now().Add(time.Minute)); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
