package models

// ListQuery captures the common list filters accepted by console endpoints.
type ListQuery struct {
	Role   string `form:"role"`
	Status string `form:"status"`
	Search string `form:"search"`
}
