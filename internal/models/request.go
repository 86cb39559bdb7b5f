package models

// CreateProjectRequest carries the text fields of the upload form.
type CreateProjectRequest struct {
	Title    string `form:"title"`
	Category string `form:"category"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
