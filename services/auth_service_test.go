package services

import (
	"net/http"
	"testing"

	"github.com/lostconnect/backend/config"
	"github.com/lostconnect/backend/db"
	"github.com/lostconnect/backend/models"
	"github.com/lostconnect/backend/services/jwt"
)

func newAuthService(gdb *db.GormDB) AuthService {
	return NewAuthService(db.NewAuthRepo(gdb), &config.Config{JWTSecret: "test-secret"})
}

func TestSignupAndLogin(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newAuthService(gdb)

	user := &models.User{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "sup3rsecret",
	}
	created, err := svc.SignupUser(user)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if created.Password != "" {
		t.Fatalf("plaintext password must be cleared")
	}
	if created.HashedPassword == "" || created.HashedPassword == "sup3rsecret" {
		t.Fatalf("password must be hashed")
	}

	resp, apiErr := svc.LoginUser(&models.LoginRequest{Email: "alice@example.com", Password: "sup3rsecret"})
	if apiErr != nil {
		t.Fatalf("login: %v", apiErr)
	}
	if resp.AccessToken == "" {
		t.Fatalf("expected access token")
	}

	claims, err := jwt.ValidateAndGetClaims(resp.AccessToken, "test-secret")
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if uint(claims["id"].(float64)) != created.ID {
		t.Fatalf("token carries wrong id: %v", claims["id"])
	}

	if _, apiErr := svc.LoginUser(&models.LoginRequest{Email: "alice@example.com", Password: "wrong"}); apiErr == nil || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized for bad password, got %v", apiErr)
	}
	if _, apiErr := svc.LoginUser(&models.LoginRequest{Email: "nobody@example.com", Password: "whatever"}); apiErr == nil || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized for unknown email, got %v", apiErr)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newAuthService(gdb)

	first := &models.User{Name: "Alice", Email: "alice@example.com", Password: "sup3rsecret"}
	if _, err := svc.SignupUser(first); err != nil {
		t.Fatalf("signup: %v", err)
	}

	dup := &models.User{Name: "Impostor", Email: "alice@example.com", Password: "sup3rsecret"}
	if _, err := svc.SignupUser(dup); err == nil {
		t.Fatalf("expected duplicate email rejection")
	}
}

func TestSignupWeakPassword(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newAuthService(gdb)

	user := &models.User{Name: "Alice", Email: "alice@example.com", Password: "123"}
	if _, err := svc.SignupUser(user); err == nil {
		t.Fatalf("expected weak password rejection")
	}
}

func TestSocialLoginCreatesAndReuses(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newAuthService(gdb)

	params := &models.CreateSocialUserParams{
		Email:    "social@example.com",
		Name:     "Social User",
		Image:    "https://lh3.example.com/avatar.jpg",
		IsSocial: true,
		Active:   true,
	}

	first, apiErr := svc.SocialLoginUser(params)
	if apiErr != nil {
		t.Fatalf("social login: %v", apiErr)
	}

	second, apiErr := svc.SocialLoginUser(params)
	if apiErr != nil {
		t.Fatalf("repeat social login: %v", apiErr)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same account on repeat login: %d vs %d", first.ID, second.ID)
	}

	// Social accounts cannot sign in with a password.
	if _, apiErr := svc.LoginUser(&models.LoginRequest{Email: "social@example.com", Password: "anything"}); apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected social account password rejection, got %v", apiErr)
	}
}

func TestResetPassword(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newAuthService(gdb)

	user := &models.User{Name: "Alice", Email: "alice@example.com", Password: "sup3rsecret"}
	created, err := svc.SignupUser(user)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	if apiErr := svc.ResetPassword(created.ID, "newpassw0rd"); apiErr != nil {
		t.Fatalf("reset: %v", apiErr)
	}

	if _, apiErr := svc.LoginUser(&models.LoginRequest{Email: "alice@example.com", Password: "sup3rsecret"}); apiErr == nil {
		t.Fatalf("old password must stop working")
	}
	if _, apiErr := svc.LoginUser(&models.LoginRequest{Email: "alice@example.com", Password: "newpassw0rd"}); apiErr != nil {
		t.Fatalf("new password login: %v", apiErr)
	}
}
