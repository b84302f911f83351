package handler

import "github.com/coursehub/marketplace-api/internal/core/domain"

type courseResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Course  *domain.Course `json:"course,omitempty"`
}

type coursesResponse struct {
	Success bool            `json:"success"`
	Courses []domain.Course `json:"courses"`
}

// lecturesResponse is returned for single-course retrieval, exposing the
// embedded lectures next to the course summary.
type lecturesResponse struct {
	Success  bool             `json:"success"`
	Course   *domain.Course   `json:"course"`
	Lectures []domain.Lecture `json:"lectures"`
}

type createCourseRequest struct {
	Title       string `form:"title"       validate:"required,min=4"`
	Description string `form:"description" validate:"required,min=10"`
	Category    string `form:"category"    validate:"required"`
	CreatedBy   string `form:"created_by"  validate:"required"`
}

type addLectureRequest struct {
	Title       string `form:"title"       validate:"required,min=4"`
	Description string `form:"description" validate:"required,min=10"`
}
