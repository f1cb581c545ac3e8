package admin

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examhub/internal/controller"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/service"
)

type ClassExamController struct {
	classExamService service.ClassExamService
	questionService  service.QuestionService
}

func NewClassExamController(ces service.ClassExamService, qs service.QuestionService) *ClassExamController {
	return &ClassExamController{classExamService: ces, questionService: qs}
}

// CreateClassExam godoc
// @Summary Schedule an exam for a class
// @Tags ClassExams
// @Accept json
// @Produce json
// @Param link body dto.ClassExamRequest true "Class and exam"
// @Success 201 {object} dto.ClassExamResponse
// @Failure 404 {object} dto.ErrorResponse "Class or exam not found"
// @Router /ClassExams [post]
func (c *ClassExamController) CreateClassExam(ctx *gin.Context) {
	var req dto.ClassExamRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.classExamService.CreateClassExam(req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create class exam")
		return
	}
	controller.Created(ctx, fmt.Sprintf("/api/ClassExams/%d", resp.ID), resp)
}

// @Summary Get a class exam
// @Tags ClassExams
// @Produce json
// @Param id path int true "ClassExam ID"
// @Success 200 {object} dto.ClassExamResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /ClassExams/{id} [get]
func (c *ClassExamController) GetClassExam(ctx *gin.Context) {
	id, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.classExamService.GetClassExam(id)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve class exam")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// @Summary Delete a class exam with its questions and answers
// @Tags ClassExams
// @Param id path int true "ClassExam ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /ClassExams/{id} [delete]
func (c *ClassExamController) DeleteClassExam(ctx *gin.Context) {
	id, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.classExamService.DeleteClassExam(id); err != nil {
		controller.RespondError(ctx, err, "Failed to delete class exam")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// @Summary Get the questions of a class exam
// @Tags Questions
// @Produce json
// @Param id path int true "ClassExam ID"
// @Success 200 {array} dto.QuestionResponse
// @Router /ClassExams/{id}/Questions [get]
func (c *ClassExamController) GetQuestions(ctx *gin.Context) {
	id, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.questionService.GetQuestionsByClassExam(id)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve questions")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
