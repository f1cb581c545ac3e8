package admin

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examhub/internal/controller"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/service"
)

type ExamController struct {
	examService      service.ExamService
	classExamService service.ClassExamService
	questionService  service.QuestionService
}

func NewExamController(es service.ExamService, ces service.ClassExamService, qs service.QuestionService) *ExamController {
	return &ExamController{examService: es, classExamService: ces, questionService: qs}
}

// CreateExam godoc
// @Summary Create an exam
// @Tags Exams
// @Accept json
// @Produce json
// @Param exam body dto.ExamRequest true "Exam data, Date as YYYY-MM-DD"
// @Success 201 {object} dto.ExamResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /Exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req dto.ExamRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.examService.CreateExam(req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create exam")
		return
	}
	controller.Created(ctx, fmt.Sprintf("/api/Exams/%d", resp.ID), resp)
}

// GetExam godoc
// @Summary Get an exam
// @Tags Exams
// @Produce json
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.ExamResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /Exams/{id} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	id, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.examService.GetExam(id)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve exam")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListExams godoc
// @Summary List exams
// @Tags Exams
// @Produce json
// @Success 200 {array} dto.ExamResponse
// @Router /Exams [get]
func (c *ExamController) ListExams(ctx *gin.Context) {
	resp, err := c.examService.ListExams()
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve exams")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateExam godoc
// @Summary Update an exam
// @Tags Exams
// @Accept json
// @Produce json
// @Param id path int true "Exam ID"
// @Param exam body dto.ExamRequest true "Exam data"
// @Success 200 {object} dto.ExamResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /Exams/{id} [put]
func (c *ExamController) UpdateExam(ctx *gin.Context) {
	id, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ExamRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.examService.UpdateExam(id, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to update exam")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteExam godoc
// @Summary Delete an exam
// @Description Removes answers, questions, class exams and grades of the exam, then the exam.
// @Tags Exams
// @Param id path int true "Exam ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /Exams/{id} [delete]
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	id, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.examService.DeleteExam(id); err != nil {
		controller.RespondError(ctx, err, "Failed to delete exam")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetQuestionsByExam godoc
// @Summary Get all questions of an exam across its class exams
// @Tags Questions
// @Produce json
// @Param id path int true "Exam ID"
// @Success 200 {array} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse "No questions found"
// @Router /Exams/{id}/Questions [get]
func (c *ExamController) GetQuestionsByExam(ctx *gin.Context) {
	id, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.questionService.GetQuestionsByExam(id)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve questions")
		return
	}
	if len(resp) == 0 {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "No questions found"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListClassExams godoc
// @Summary List the classes an exam is scheduled for
// @Tags Exams
// @Produce json
// @Param id path int true "Exam ID"
// @Success 200 {array} dto.ClassExamResponse
// @Router /Exams/{id}/ClassExams [get]
func (c *ExamController) ListClassExams(ctx *gin.Context) {
	id, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.classExamService.ListByExam(id)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve class exams")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
