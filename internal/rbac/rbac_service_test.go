package rbac_test

import (
	"testing"

	"go-hrm/internal/rbac"
	"go-hrm/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) rbac.Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	require.NoError(t, err)
	svc, err := rbac.NewService(enforcer)
	require.NoError(t, err)
	return svc
}

func TestService_EnforceDefaultPolicy(t *testing.T) {
	svc := newService(t)

	cases := []struct {
		role, resource, action string
		want                   bool
	}{
		{rbac.RoleAdmin, rbac.ResourceBackup, rbac.ActionWrite, true},
		{rbac.RoleAdmin, rbac.ResourcePayroll, rbac.ActionWrite, true},
		{rbac.RoleHR, rbac.ResourceBackup, rbac.ActionWrite, false},
		{rbac.RoleHR, rbac.ResourceDepartment, rbac.ActionWrite, true},
		{rbac.RoleHR, rbac.ResourceEmployee, rbac.ActionRead, true},
		{rbac.RoleHR, rbac.ResourcePayroll, rbac.ActionRead, true},
		{rbac.RoleHR, rbac.ResourceActivityLog, rbac.ActionRead, true},
		{rbac.RoleHR, rbac.ResourceActivityLog, rbac.ActionWrite, false},
		{rbac.RoleEmployee, rbac.ResourceEmployee, rbac.ActionRead, true},
		{rbac.RoleEmployee, rbac.ResourceEmployee, rbac.ActionWrite, false},
		{rbac.RoleEmployee, rbac.ResourceDepartment, rbac.ActionRead, false},
		{rbac.RoleEmployee, rbac.ResourceBackup, rbac.ActionWrite, false},
		{rbac.RoleEmployee, rbac.ResourceAttendance, rbac.ActionClock, true},
		{rbac.RoleEmployee, rbac.ResourceAttendance, rbac.ActionReport, false},
		{rbac.RoleEmployee, rbac.ResourceStatistics, rbac.ActionRead, false},
		{rbac.RoleHR, rbac.ResourceAttendance, rbac.ActionRead, true},
		{rbac.RoleHR, rbac.ResourceAttendance, rbac.ActionReport, true},
		{rbac.RoleHR, rbac.ResourceStatistics, rbac.ActionRead, true},
		{"UNKNOWN", rbac.ResourceEmployee, rbac.ActionRead, false},
	}

	for _, tc := range cases {
		allowed, err := svc.Enforce(tc.role, tc.resource, tc.action)
		require.NoError(t, err)
		assert.Equal(t, tc.want, allowed, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}

func TestService_Permissions(t *testing.T) {
	svc := newService(t)

	perms, err := svc.Permissions(rbac.RoleEmployee)

	require.NoError(t, err)
	assert.Equal(t, []rbac.PermissionResponse{
		{Resource: rbac.ResourceAttendance, Action: rbac.ActionClock},
		{Resource: rbac.ResourceAttendance, Action: rbac.ActionRead},
		{Resource: rbac.ResourceEmployee, Action: rbac.ActionRead},
		{Resource: rbac.ResourcePayroll, Action: rbac.ActionRead},
	}, perms)
}

func TestService_LoadPoliciesReplaces(t *testing.T) {
	svc := newService(t)

	err := svc.LoadPolicies([]rbac.Policy{
		{Role: rbac.RoleEmployee, Resource: rbac.ResourceDepartment, Action: rbac.ActionRead},
	}, nil)
	require.NoError(t, err)

	allowed, err := svc.Enforce(rbac.RoleEmployee, rbac.ResourceDepartment, rbac.ActionRead)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Enforce(rbac.RoleAdmin, rbac.ResourceBackup, rbac.ActionWrite)
	require.NoError(t, err)
	assert.False(t, allowed)
}
