package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarhu/sauna-booking/internal/model"
)

// bcrypt.MinCost keeps the hashing in these tests fast.
const testBcryptCost = 4

func newUserFixture(t *testing.T) *UserService {
	t.Helper()
	return NewUserService(newMemUserStore(), testBcryptCost)
}

func TestAuthenticate(t *testing.T) {
	svc := newUserFixture(t)
	_, err := svc.Create(context.Background(), "maija", "secret123", model.RoleEmployee)
	require.NoError(t, err)

	u, err := svc.Authenticate(context.Background(), "maija", "secret123")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "maija", u.Username)

	u, err = svc.Authenticate(context.Background(), "maija", "wrong")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = svc.Authenticate(context.Background(), "nobody", "secret123")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestCreateUserDefaultsAndDuplicates(t *testing.T) {
	svc := newUserFixture(t)

	u, err := svc.Create(context.Background(), "maija", "secret123", "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleEmployee, u.Role)

	_, err = svc.Create(context.Background(), "maija", "other", model.RoleAdmin)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Username already exists", ve.Msg)
}

func TestCreateUserInvalidRole(t *testing.T) {
	svc := newUserFixture(t)
	_, err := svc.Create(context.Background(), "maija", "secret123", "manager")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Invalid role. Must be admin or employee", ve.Msg)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc := newUserFixture(t)
	u, err := svc.Create(context.Background(), "maija", "secret123", model.RoleEmployee)
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), u.ID, "wrong", "newsecret")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Password change failed - current password incorrect", ve.Msg)

	// Old password still works after the failed attempt.
	got, err := svc.Authenticate(context.Background(), "maija", "secret123")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestChangePasswordRotates(t *testing.T) {
	svc := newUserFixture(t)
	u, err := svc.Create(context.Background(), "maija", "secret123", model.RoleEmployee)
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(context.Background(), u.ID, "secret123", "newsecret"))

	got, err := svc.Authenticate(context.Background(), "maija", "newsecret")
	require.NoError(t, err)
	assert.NotNil(t, got)
	got, err = svc.Authenticate(context.Background(), "maija", "secret123")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResetPassword(t *testing.T) {
	svc := newUserFixture(t)
	u, err := svc.Create(context.Background(), "maija", "secret123", model.RoleEmployee)
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(context.Background(), u.ID, "issued-by-admin"))
	got, err := svc.Authenticate(context.Background(), "maija", "issued-by-admin")
	require.NoError(t, err)
	assert.NotNil(t, got)

	err = svc.ResetPassword(context.Background(), 999, "whatever")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "User not found", nf.Msg)
}

func TestUpdateUser(t *testing.T) {
	svc := newUserFixture(t)
	u, err := svc.Create(context.Background(), "maija", "secret123", model.RoleEmployee)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "pekka", "secret123", model.RoleEmployee)
	require.NoError(t, err)

	admin := model.RoleAdmin
	updated, err := svc.Update(context.Background(), u.ID, model.UserPatch{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)

	taken := "pekka"
	_, err = svc.Update(context.Background(), u.ID, model.UserPatch{Username: &taken})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Username already exists", ve.Msg)
}

func TestDeleteUser(t *testing.T) {
	svc := newUserFixture(t)
	u, err := svc.Create(context.Background(), "maija", "secret123", model.RoleEmployee)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), u.ID))

	err = svc.Delete(context.Background(), u.ID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "User not found", nf.Msg)
}
