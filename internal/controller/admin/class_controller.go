package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examhub/internal/controller"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/service"
)

type ClassController struct {
	classService     service.ClassService
	classExamService service.ClassExamService
	messageService   service.MessageService
}

func NewClassController(cs service.ClassService, ces service.ClassExamService, ms service.MessageService) *ClassController {
	return &ClassController{classService: cs, classExamService: ces, messageService: ms}
}

// CreateClass godoc
// @Summary Create a class
// @Description Creates a class with a user-assigned ClassId. The teacher must be a registered teacher.
// @Tags Classes
// @Accept json
// @Produce json
// @Param class body dto.ClassRequest true "Class data"
// @Success 201 {object} dto.ClassResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Failure 409 {object} dto.ErrorResponse "ClassId already exists"
// @Failure 500 {object} dto.ErrorResponse
// @Router /Classes [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.ClassRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.classService.CreateClass(req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create class")
		return
	}
	controller.Created(ctx, "/api/Classes/"+resp.ClassID, resp)
}

// GetClass godoc
// @Summary Get a class with its student ids
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} dto.ClassResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /Classes/{id} [get]
func (c *ClassController) GetClass(ctx *gin.Context) {
	resp, err := c.classService.GetClass(ctx.Param("id"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve class")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListClasses godoc
// @Summary List classes
// @Description Filters by teacher email or by student id when given.
// @Tags Classes
// @Produce json
// @Param teacherEmail query string false "Teacher email"
// @Param studentId query string false "Student ID"
// @Success 200 {array} dto.ClassResponse
// @Router /Classes [get]
func (c *ClassController) ListClasses(ctx *gin.Context) {
	resp, err := c.classService.ListClasses(ctx.Query("teacherEmail"), ctx.Query("studentId"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve classes")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateClass godoc
// @Summary Replace a class
// @Description Replaces every field and the whole student list.
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param class body dto.ClassRequest true "Class data"
// @Success 200 {object} dto.ClassResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /Classes/{id} [put]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	var req dto.ClassRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.classService.UpdateClass(ctx.Param("id"), req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to update class")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteClass godoc
// @Summary Delete a class
// @Description Removes the class, its messages, enrollment and all class exams with their questions and answers.
// @Tags Classes
// @Param id path string true "Class ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /Classes/{id} [delete]
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	if err := c.classService.DeleteClass(ctx.Param("id")); err != nil {
		controller.RespondError(ctx, err, "Failed to delete class")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ListClassExams godoc
// @Summary List the exams scheduled for a class
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {array} dto.ClassExamResponse
// @Router /Classes/{id}/ClassExams [get]
func (c *ClassController) ListClassExams(ctx *gin.Context) {
	resp, err := c.classExamService.ListByClass(ctx.Param("id"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve class exams")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListMessages godoc
// @Summary List the messages of a class, newest first
// @Tags Messages
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {array} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /Classes/{id}/Messages [get]
func (c *ClassController) ListMessages(ctx *gin.Context) {
	resp, err := c.messageService.ListMessages(ctx.Param("id"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve messages")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
