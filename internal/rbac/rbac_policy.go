package rbac

const (
	RoleAdmin    = "ADMIN"
	RoleHR       = "HR"
	RoleEmployee = "EMPLOYEE"

	ResourceDepartment  = "department"
	ResourceEmployee    = "employee"
	ResourcePayroll     = "payroll"
	ResourceBackup      = "backup"
	ResourceActivityLog = "activity_log"
	ResourceUser        = "user"
	ResourceAttendance  = "attendance"
	ResourceStatistics  = "statistics"

	ActionRead   = "read"
	ActionWrite  = "write"
	ActionReport = "report"
	ActionClock  = "clock"

	wildcard = "*"
)

type Policy struct {
	Role     string
	Resource string
	Action   string
}

// DefaultPolicies grants ADMIN everything. HR inherits EMPLOYEE (see
// DefaultInheritance); backup and user accounts are reachable only through
// the ADMIN wildcard.
var DefaultPolicies = []Policy{
	{RoleAdmin, wildcard, wildcard},

	{RoleHR, ResourceDepartment, ActionRead},
	{RoleHR, ResourceDepartment, ActionWrite},
	{RoleHR, ResourceEmployee, ActionWrite},
	{RoleHR, ResourcePayroll, ActionWrite},
	{RoleHR, ResourceActivityLog, ActionRead},
	{RoleHR, ResourceAttendance, ActionWrite},
	{RoleHR, ResourceAttendance, ActionReport},
	{RoleHR, ResourceStatistics, ActionRead},

	{RoleEmployee, ResourceEmployee, ActionRead},
	{RoleEmployee, ResourcePayroll, ActionRead},
	{RoleEmployee, ResourceAttendance, ActionRead},
	{RoleEmployee, ResourceAttendance, ActionClock},
}

// DefaultInheritance maps a role to the role whose permissions it inherits.
var DefaultInheritance = map[string]string{
	RoleHR: RoleEmployee,
}
