package dto

// CreateRoutineRequest: payload for creating a morning routine config
type CreateRoutineRequest struct {
	Name     string   `json:"name" binding:"required"`
	Tasks    []string `json:"tasks" binding:"required,min=1"`
	Weekdays []int    `json:"weekdays"` // 0=Sunday .. 6=Saturday; empty = every day
}

// UpdateRoutineRequest: partial update for a routine config
type UpdateRoutineRequest struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

func (r UpdateRoutineRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Active != nil {
		fields["active"] = *r.Active
	}
	return fields
}

// CompleteTaskRequest: marks one routine task done for a date
type CompleteTaskRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Task string `json:"task" binding:"required"`
}
