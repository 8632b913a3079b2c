package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholix-api/internal/models"
	"github.com/noah-isme/scholix-api/pkg/response"
)

type directoryLister interface {
	Students(ctx context.Context, classID, academicYearID string) ([]models.Student, error)
	Classes(ctx context.Context) ([]models.Class, error)
	Terms(ctx context.Context) ([]models.Term, error)
	AcademicYears(ctx context.Context) ([]models.AcademicYear, error)
}

// DirectoryHandler exposes the lookup lists used by report filter controls.
type DirectoryHandler struct {
	directory directoryLister
}

// NewDirectoryHandler constructs the handler.
func NewDirectoryHandler(directory directoryLister) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// Students godoc
// @Summary List students
// @Tags Directory
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *DirectoryHandler) Students(c *gin.Context) {
	students, err := h.directory.Students(c.Request.Context(), c.Query("classId"), c.Query("yearId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Classes godoc
// @Summary List classes
// @Tags Directory
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *DirectoryHandler) Classes(c *gin.Context) {
	classes, err := h.directory.Classes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// Terms godoc
// @Summary List terms
// @Tags Directory
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /terms [get]
func (h *DirectoryHandler) Terms(c *gin.Context) {
	terms, err := h.directory.Terms(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, terms)
}

// AcademicYears godoc
// @Summary List academic years
// @Tags Directory
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /academic-years [get]
func (h *DirectoryHandler) AcademicYears(c *gin.Context) {
	years, err := h.directory.AcademicYears(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, years)
}
