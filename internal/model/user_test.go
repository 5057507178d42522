package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndCheckPassword(t *testing.T) {
	user := &User{Username: "worker1"}

	require.NoError(t, user.SetPassword("s3cret-pass"))
	assert.NotEqual(t, "s3cret-pass", user.Password, "password must be stored hashed")

	assert.True(t, user.CheckPassword("s3cret-pass"))
	assert.False(t, user.CheckPassword("wrong-pass"))
	assert.False(t, user.CheckPassword(""))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleSupervisor))
	assert.True(t, ValidRole(RoleManager))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("SUPERUSER"))
	assert.False(t, ValidRole(""))
}

func TestToResponseOmitsPassword(t *testing.T) {
	user := &User{Username: "worker1", Email: "w1@example.com", Role: RoleUser, IsActive: true}
	require.NoError(t, user.SetPassword("s3cret-pass"))

	resp := user.ToResponse()
	assert.Equal(t, "worker1", resp.Username)
	assert.Equal(t, "w1@example.com", resp.Email)
	assert.Equal(t, RoleUser, resp.Role)
}
