package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"flix/internal/data/entity"
	"flix/internal/dto/request"
	"flix/pkg/utils"
)

func TestRegisterCreatesUserAndSession(t *testing.T) {
	env := newTestEnv()
	svc := NewAuthService(env.repo, env.config, env.log)

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if resp.Username != "alice" {
		t.Errorf("Username = %q, want %q", resp.Username, "alice")
	}
	if resp.Role != string(entity.RoleMember) {
		t.Errorf("Role = %q, want %q", resp.Role, entity.RoleMember)
	}
	if resp.Token == "" {
		t.Error("expected a session token after register")
	}

	// The issued token must verify against the configured secret
	bare, ok := utils.VerifySessionToken(resp.Token, env.config.Session.Secret)
	if !ok {
		t.Fatal("issued token failed signature verification")
	}
	session, _ := env.sessions.FindValidSession(context.Background(), bare)
	if session == nil {
		t.Error("no valid session stored for the issued token")
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	env := newTestEnv()
	svc := NewAuthService(env.repo, env.config, env.log)

	first := &request.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"}
	if _, err := svc.Register(context.Background(), first); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	tests := []struct {
		name string
		req  *request.RegisterRequest
	}{
		{"same email different username", &request.RegisterRequest{
			Username: "bob", Email: "alice@example.com", Password: "secret1",
		}},
		{"same username different email", &request.RegisterRequest{
			Username: "alice", Email: "other@example.com", Password: "secret1",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			if !errors.Is(err, ErrConflict) {
				t.Errorf("Register() error = %v, want ErrConflict", err)
			}
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv()
	svc := NewAuthService(env.repo, env.config, env.log)

	tests := []struct {
		name string
		req  *request.RegisterRequest
	}{
		{"empty username", &request.RegisterRequest{Email: "a@b.com", Password: "secret1"}},
		{"bad email", &request.RegisterRequest{Username: "alice", Email: "not-an-email", Password: "secret1"}},
		{"short password", &request.RegisterRequest{Username: "alice", Email: "a@b.com", Password: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Register() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestLoginByUsernameOrEmail(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice@example.com", "secret1", entity.RoleMember)
	svc := NewAuthService(env.repo, env.config, env.log)

	for _, identity := range []string{"alice", "alice@example.com"} {
		resp, err := svc.Login(context.Background(), &request.LoginRequest{
			Identity: identity,
			Password: "secret1",
		})
		if err != nil {
			t.Fatalf("Login(%q) error = %v", identity, err)
		}
		if resp.Username != "alice" {
			t.Errorf("Login(%q) Username = %q, want alice", identity, resp.Username)
		}
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice@example.com", "secret1", entity.RoleMember)
	svc := NewAuthService(env.repo, env.config, env.log)

	tests := []struct {
		name     string
		identity string
		password string
	}{
		{"unknown identity", "nobody", "secret1"},
		{"wrong password", "alice", "wrong-password"},
	}

	var messages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &request.LoginRequest{
				Identity: tt.identity,
				Password: tt.password,
			})
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
			}
			messages = append(messages, err.Error())
		})
	}

	// Identical messages so the response does not reveal which part failed
	if len(messages) == 2 && messages[0] != messages[1] {
		t.Errorf("credential failure messages differ: %q vs %q", messages[0], messages[1])
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	env := newTestEnv()
	user := env.addUser("alice", "alice@example.com", "secret1", entity.RoleMember)
	svc := NewAuthService(env.repo, env.config, env.log)

	resp, err := svc.Login(context.Background(), &request.LoginRequest{
		Identity: "alice",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	bare, _ := utils.VerifySessionToken(resp.Token, env.config.Session.Secret)

	if err := svc.Logout(context.Background(), bare); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	session, _ := env.sessions.FindValidSession(context.Background(), bare)
	if session != nil {
		t.Error("session still valid after logout")
	}

	// Second logout, no session, garbage token: all no-ops
	if err := svc.Logout(context.Background(), bare); err != nil {
		t.Errorf("repeated Logout() error = %v, want nil", err)
	}
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Errorf("Logout(\"\") error = %v, want nil", err)
	}
	if err := svc.Logout(context.Background(), "not-a-uuid"); err != nil {
		t.Errorf("Logout(garbage) error = %v, want nil", err)
	}

	_ = user
}

func TestPasswordNeverStoredPlaintext(t *testing.T) {
	env := newTestEnv()
	svc := NewAuthService(env.repo, env.config, env.log)

	if _, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, _ := env.users.FindByUsername(context.Background(), "alice")
	if user == nil {
		t.Fatal("user not stored")
	}
	if strings.Contains(user.PasswordHash, "secret1") {
		t.Error("password stored in plaintext")
	}
	if !utils.CheckPasswordHash("secret1", user.PasswordHash) {
		t.Error("stored hash does not verify the original password")
	}
}
