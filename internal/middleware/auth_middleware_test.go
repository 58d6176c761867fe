package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Innie12/Inventory-Management-System/internal/model"
	"github.com/Innie12/Inventory-Management-System/internal/repository"
	"github.com/Innie12/Inventory-Management-System/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	repository.UserRepository
	users map[uuid.UUID]*model.User
}

func (f *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestApp(repo repository.UserRepository, adminOnly bool) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{RequireAuth(repo)}
	if adminOnly {
		handlers = append(handlers, RequireAdmin())
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user": c.Locals("user_name")})
	})
	app.Get("/protected", handlers...)
	return app
}

func seedUser(role model.Role, active bool) (*fakeUserRepo, *model.User, string) {
	user := &model.User{Username: "alice", Email: "alice@example.com", Role: role, IsActive: active}
	user.ID = uuid.New()
	token, _ := jwt.GenerateToken(user.ID, user.Username, user.Email, string(user.Role))
	return &fakeUserRepo{users: map[uuid.UUID]*model.User{user.ID: user}}, user, token
}

func TestRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-test-secret")

	repo, _, token := seedUser(model.RoleUser, true)
	app := newTestApp(repo, false)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + token, 200},
		{"missing header", "", 401},
		{"malformed header", "Token abc", 401},
		{"garbage token", "Bearer not.a.token", 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status: got %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

// A reset token only authorizes a password reset; it must never open a
// session, even though it verifies against the same secret.
func TestRequireAuthRejectsResetToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-test-secret")

	repo, user, _ := seedUser(model.RoleUser, true)
	app := newTestApp(repo, false)

	resetToken, err := jwt.GenerateResetToken(user.ID, 10*time.Minute)
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+resetToken)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("reset token: got %d, want 401", resp.StatusCode)
	}
}

func TestRequireAuthRejectsDisabledUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-test-secret")

	repo, _, token := seedUser(model.RoleUser, false)
	app := newTestApp(repo, false)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("disabled user: got %d, want 401", resp.StatusCode)
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-test-secret")

	tests := []struct {
		role model.Role
		want int
	}{
		{model.RoleAdmin, 200},
		{model.RoleManager, 403},
		{model.RoleUser, 403},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			repo, _, token := seedUser(tt.role, true)
			app := newTestApp(repo, true)

			req := httptest.NewRequest("GET", "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("role %s: got %d, want %d", tt.role, resp.StatusCode, tt.want)
			}
		})
	}
}
