package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	jwtsvc "boqbase/internal/pkg/jwt"
)

func newTestService(t *testing.T) *Service {
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&User{}))
	return NewService(NewRepository(db), jwtsvc.New("test_secret_key_32_characters_min", time.Hour))
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	u, token, err := svc.Register(ctx, RegisterRequest{
		Email:    "supplier@example.com",
		Password: "password123",
		Name:     "Supplier",
		Role:     "supplier",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, RoleSupplier, u.Role)

	_, token, err = svc.Login(ctx, LoginRequest{Email: "supplier@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "supplier@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, _, err := svc.Register(ctx, RegisterRequest{
		Email:    "user@example.com",
		Password: "password123",
		Name:     "User",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterRequest{
		Email:    "user@example.com",
		Password: "password456",
		Name:     "Other",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_StaffRolesRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, role := range []string{"admin", "software_team", "purchase_team"} {
		_, _, err := svc.Register(ctx, RegisterRequest{
			Email:    role + "@example.com",
			Password: "password123",
			Name:     role,
			Role:     role,
		})
		assert.ErrorIs(t, err, ErrRoleNotAllowed)
	}
}

func TestRoleIsStaff(t *testing.T) {
	assert.True(t, RoleAdmin.IsStaff())
	assert.True(t, RoleSoftwareTeam.IsStaff())
	assert.True(t, RolePurchaseTeam.IsStaff())
	assert.False(t, RoleSupplier.IsStaff())
	assert.False(t, RoleUser.IsStaff())
}
