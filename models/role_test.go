package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_AtLeast(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		required Role
		want     bool
	}{
		{"admin over member", RoleAdmin, RoleMember, true},
		{"member equals member", RoleMember, RoleMember, true},
		{"viewer below member", RoleViewer, RoleMember, false},
		{"unknown role", Role(42), RoleViewer, false},
		{"unknown requirement", RoleAdmin, Role(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.required))
		})
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)
	assert.Equal(t, "admin", r.String())

	_, err = ParseRole("root")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Role(9).String())
}
