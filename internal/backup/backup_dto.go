package backup

type RestoreRequest struct {
	FilePath  string `json:"file_path" form:"file_path"`
	Overwrite bool   `json:"overwrite" form:"overwrite"`
}

type ExportResult struct {
	FilePath      string `json:"file_path"`
	EmployeeCount int    `json:"employee_count"`
}

type RestoreResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}
