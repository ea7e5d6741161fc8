package dto

// CreateTodoRequest: payload for creating a todo
type CreateTodoRequest struct {
	Title string `json:"title" binding:"required"`
	Notes string `json:"notes"`
	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
}

// UpdateTodoRequest: partial update; nil fields are left untouched
type UpdateTodoRequest struct {
	Title     *string `json:"title,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Date      *string `json:"date,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// Fields maps the set values for a repository partial update.
func (r UpdateTodoRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Notes != nil {
		fields["notes"] = *r.Notes
	}
	if r.Date != nil {
		fields["date"] = *r.Date
	}
	if r.Completed != nil {
		fields["completed"] = *r.Completed
	}
	return fields
}

// CreatePriorityRequest: payload for creating a daily priority
type CreatePriorityRequest struct {
	Title string `json:"title" binding:"required"`
	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Rank  int    `json:"rank"`
}

// UpdatePriorityRequest: partial update for a daily priority
type UpdatePriorityRequest struct {
	Title     *string `json:"title,omitempty"`
	Date      *string `json:"date,omitempty"`
	Rank      *int    `json:"rank,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

func (r UpdatePriorityRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Date != nil {
		fields["date"] = *r.Date
	}
	if r.Rank != nil {
		fields["rank"] = *r.Rank
	}
	if r.Completed != nil {
		fields["completed"] = *r.Completed
	}
	return fields
}
