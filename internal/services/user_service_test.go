package services

import (
	"testing"

	"github.com/atlauncher/atlauncher-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Role{}, &models.UserRole{})
	require.NoError(t, err)

	return db
}

func TestCreateUserHashesPassword(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewUserService(db, bcrypt.MinCost)

	user := &models.User{Username: "test", Email: "test@example.com"}
	require.NoError(t, svc.CreateUser(user, "password"))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)

	// The stored credential is a bcrypt hash of the plaintext, not the
	// plaintext itself
	assert.NotEqual(t, "password", stored.Password)
	assert.True(t, stored.CheckPassword("password"))
	assert.False(t, stored.CheckPassword("wrong"))
}

func TestCreateUserGeneratesVerificationCode(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewUserService(db, bcrypt.MinCost)

	user := &models.User{Username: "test", Email: "test@example.com"}
	require.NoError(t, svc.CreateUser(user, "password"))

	assert.Len(t, user.VerificationCode, 128)
	assert.False(t, user.IsVerified)
}

func TestUpdateUserRehashesOnlyWhenPasswordGiven(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewUserService(db, bcrypt.MinCost)

	user := &models.User{Username: "test", Email: "test@example.com"}
	require.NoError(t, svc.CreateUser(user, "password"))
	originalHash := user.Password

	// Update without password leaves the hash untouched
	user.Email = "changed@example.com"
	require.NoError(t, svc.UpdateUser(user, nil))
	assert.Equal(t, originalHash, user.Password)

	// Update with a password re-hashes
	newPassword := "newpassword"
	require.NoError(t, svc.UpdateUser(user, &newPassword))
	assert.NotEqual(t, originalHash, user.Password)
	assert.True(t, user.CheckPassword("newpassword"))
}

func TestAttachRole(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewUserService(db, bcrypt.MinCost)

	user := &models.User{Username: "test", Email: "test@example.com"}
	require.NoError(t, svc.CreateUser(user, "password"))
	role := &models.Role{Name: "admin"}
	require.NoError(t, db.Create(role).Error)

	granter := &models.User{Username: "granter", Email: "granter@example.com"}
	require.NoError(t, svc.CreateUser(granter, "password"))

	require.NoError(t, svc.AttachRole(user.ID, role.ID, &granter.ID))

	roles, err := svc.GetUserRoles(user.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "admin", roles[0].Name)

	// The pivot records who granted the role
	var pivot models.UserRole
	require.NoError(t, db.Where("user_id = ? AND role_id = ?", user.ID, role.ID).First(&pivot).Error)
	require.NotNil(t, pivot.CreatedBy)
	assert.Equal(t, granter.ID, *pivot.CreatedBy)
}

func TestAttachRoleTwiceFails(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewUserService(db, bcrypt.MinCost)

	user := &models.User{Username: "test", Email: "test@example.com"}
	require.NoError(t, svc.CreateUser(user, "password"))
	role := &models.Role{Name: "admin"}
	require.NoError(t, db.Create(role).Error)

	require.NoError(t, svc.AttachRole(user.ID, role.ID, nil))
	err := svc.AttachRole(user.ID, role.ID, nil)
	assert.ErrorIs(t, err, ErrRoleAlreadyAttached)
}

func TestDetachRole(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewUserService(db, bcrypt.MinCost)

	user := &models.User{Username: "test", Email: "test@example.com"}
	require.NoError(t, svc.CreateUser(user, "password"))
	role := &models.Role{Name: "admin"}
	require.NoError(t, db.Create(role).Error)
	require.NoError(t, svc.AttachRole(user.ID, role.ID, nil))

	require.NoError(t, svc.DetachRole(user.ID, role.ID))

	roles, err := svc.GetUserRoles(user.ID)
	require.NoError(t, err)
	assert.Empty(t, roles)

	// Detaching again reports not found
	err = svc.DetachRole(user.ID, role.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRoleService(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewRoleService(db)

	role := &models.Role{Name: "admin", Description: "Full access"}
	require.NoError(t, svc.CreateRole(role))

	byName, err := svc.GetRoleByName("admin")
	require.NoError(t, err)
	assert.Equal(t, role.ID, byName.ID)

	byID, err := svc.GetRoleByID(role.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", byID.Name)

	all, err := svc.GetAllRoles()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.DeleteRole(role.ID))
	_, err = svc.GetRoleByName("admin")
	assert.Error(t, err)
}
