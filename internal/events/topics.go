package events

const (
	PayrollLifecycleTopic  = "hrm.payroll.lifecycle.v1"
	EmployeeLifecycleTopic = "hrm.employee.lifecycle.v1"
)

const (
	EventPayrollRecalculated = "payroll_recalculated"
	EventPayrollDeleted      = "payroll_deleted"
	EventEmployeesRestored   = "employees_restored"
	EventEmployeeCreated     = "employee_created"
	EventEmployeeUpdated     = "employee_updated"
	EventEmployeeDeleted     = "employee_deleted"
)
