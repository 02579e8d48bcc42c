package activitylog

type ListFilter struct {
	From     string `form:"from"`
	To       string `form:"to"`
	UserID   string `form:"user_id"`
	Keyword  string `form:"q"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type ActivityLogResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id,omitempty"`
	Action     string `json:"action"`
	EntityName string `json:"entity_name"`
	EntityID   string `json:"entity_id,omitempty"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}
