package employee

import "github.com/shopspring/decimal"

type CreateEmployeeRequest struct {
	FullName     string          `json:"full_name" binding:"required,max=200"`
	DateOfBirth  string          `json:"date_of_birth" binding:"required"`
	Gender       string          `json:"gender" binding:"max=20"`
	Address      string          `json:"address"`
	Phone        string          `json:"phone" binding:"max=50"`
	DepartmentID string          `json:"department_id" binding:"required,uuid"`
	Position     string          `json:"position" binding:"max=150"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	HireDate     string          `json:"hire_date"`
	IsActive     *bool           `json:"is_active"`
}

type UpdateEmployeeRequest = CreateEmployeeRequest

type EmployeeDepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeeResponse struct {
	ID           string                      `json:"id"`
	FullName     string                      `json:"full_name"`
	DateOfBirth  string                      `json:"date_of_birth"`
	Gender       string                      `json:"gender,omitempty"`
	Address      string                      `json:"address,omitempty"`
	Phone        string                      `json:"phone,omitempty"`
	DepartmentID string                      `json:"department_id"`
	Department   *EmployeeDepartmentResponse `json:"department,omitempty"`
	Position     string                      `json:"position,omitempty"`
	BaseSalary   string                      `json:"base_salary"`
	HireDate     string                      `json:"hire_date"`
	IsActive     bool                        `json:"is_active"`
}

type EmployeeOptionResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}
