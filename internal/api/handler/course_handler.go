package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coursehub/marketplace-api/internal/core/ports"
)

// CourseHandler exposes course and lecture content management.
type CourseHandler struct {
	courses ports.CourseService
}

func NewCourseHandler(courses ports.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List returns all course summaries without their lectures.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Success      200  {object}  coursesResponse
// @Router       /courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	courses, err := h.courses.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, coursesResponse{Success: true, Courses: courses})
}

// Create adds a new course from a multipart form (fields + poster image).
//
// @Summary      Create a course
// @Tags         courses
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  courseResponse
// @Failure      400  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /createcourse [post]
func (h *CourseHandler) Create(c echo.Context) error {
	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	poster, closeFile, err := formFile(c, "file")
	if err != nil {
		return err
	}
	defer closeFile()

	course, err := h.courses.Create(c.Request().Context(), req.Title, req.Description, req.Category, req.CreatedBy, poster)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, courseResponse{
		Success: true,
		Message: "Course Created Successfully. You can add lectures now.",
		Course:  course,
	})
}

// Get returns one course with its lectures and counts the view.
func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.courses.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lecturesResponse{
		Success:  true,
		Course:   course,
		Lectures: course.Lectures,
	})
}

// AddLecture appends a lecture with its video to the course.
func (h *CourseHandler) AddLecture(c echo.Context) error {
	var req addLectureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	video, closeFile, err := formFile(c, "file")
	if err != nil {
		return err
	}
	defer closeFile()

	course, err := h.courses.AddLecture(c.Request().Context(), c.Param("id"), req.Title, req.Description, video)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, courseResponse{
		Success: true,
		Message: "Lecture Added Successfully",
		Course:  course,
	})
}

// Delete removes a course along with its stored poster and videos.
func (h *CourseHandler) Delete(c echo.Context) error {
	if err := h.courses.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Course Deleted Successfully"})
}

// DeleteLecture removes one lecture, identified by lecture and course id
// query parameters.
func (h *CourseHandler) DeleteLecture(c echo.Context) error {
	lectureID := c.QueryParam("id")
	courseID := c.QueryParam("courseId")
	if lectureID == "" || courseID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id and courseId are required")
	}

	if err := h.courses.DeleteLecture(c.Request().Context(), courseID, lectureID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Lecture Deleted Successfully"})
}
