package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Satisfies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		role     Role
		required Role
		want     bool
	}{
		{name: "admin satisfies admin", role: RoleAdmin, required: RoleAdmin, want: true},
		{name: "admin satisfies member", role: RoleAdmin, required: RoleMember, want: true},
		{name: "admin satisfies read_only", role: RoleAdmin, required: RoleReadOnly, want: true},
		{name: "member satisfies member", role: RoleMember, required: RoleMember, want: true},
		{name: "member satisfies scanner", role: RoleMember, required: RoleScanner, want: true},
		{name: "member does not satisfy admin", role: RoleMember, required: RoleAdmin, want: false},
		{name: "scanner satisfies scanner", role: RoleScanner, required: RoleScanner, want: true},
		{name: "scanner does not satisfy member", role: RoleScanner, required: RoleMember, want: false},
		{name: "read_only satisfies read_only", role: RoleReadOnly, required: RoleReadOnly, want: true},
		{name: "read_only does not satisfy scanner", role: RoleReadOnly, required: RoleScanner, want: false},
		{name: "unknown role satisfies nothing", role: Role("manager"), required: RoleReadOnly, want: false},
		{name: "unknown required is never satisfied", role: RoleAdmin, required: Role("superuser"), want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.role.Satisfies(tt.required))
		})
	}
}

func TestRole_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, RoleReadOnly.Valid())
	assert.True(t, RoleScanner.Valid())
	assert.True(t, RoleMember.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("manager").Valid())
}
