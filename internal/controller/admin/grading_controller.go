package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examhub/internal/controller"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/service"
)

type GradingController struct {
	gradingService service.GradingService
}

func NewGradingController(gs service.GradingService) *GradingController {
	return &GradingController{gradingService: gs}
}

// GradeAnswer godoc
// @Summary Grade one answer by hand
// @Description Send either Mark (correct, half, incorrect) or a custom Grade 0-100. The latest call wins.
// @Tags Grading
// @Accept json
// @Produce json
// @Param id path string true "StudentAnswer ID"
// @Param grade body dto.ManualGradeRequest true "Mark or Grade"
// @Success 200 {object} dto.StudentAnswerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /StudentAnswers/{id}/Grade [put]
func (c *GradingController) GradeAnswer(ctx *gin.Context) {
	var req dto.ManualGradeRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.gradingService.GradeAnswer(ctx.Param("id"), req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to grade answer")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ApplyExternalGrades godoc
// @Summary Store grades computed outside the service
// @Description All grades are applied in one transaction, or none are.
// @Tags Grading
// @Accept json
// @Produce json
// @Param grades body dto.ExternalGradesRequest true "Grades"
// @Success 200 {object} map[string]int "Updated count"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /Grading/External [post]
func (c *GradingController) ApplyExternalGrades(ctx *gin.Context) {
	var req dto.ExternalGradesRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	n, err := c.gradingService.ApplyExternalGrades(req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to apply grades")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"Updated": n})
}

// AutoGrade godoc
// @Summary Grade every ungraded answer of a student and aggregate
// @Description Objective questions use the answer key, the rest go to the configured grading provider.
// @Tags Grading
// @Accept json
// @Produce json
// @Param request body dto.AutoGradeRequest true "Exam and student"
// @Success 200 {object} dto.AutoGradeResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse "Grading provider failed for every ungraded answer"
// @Router /Grading/Auto [post]
func (c *GradingController) AutoGrade(ctx *gin.Context) {
	var req dto.AutoGradeRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.gradingService.AutoGrade(ctx.Request.Context(), req.ExamID, req.StudentID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to auto grade")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Aggregate godoc
// @Summary Recompute the exam grade of a student
// @Tags Grading
// @Accept json
// @Produce json
// @Param request body dto.AggregateRequest true "Exam and student"
// @Success 200 {object} dto.GradeResponse
// @Failure 400 {object} dto.ErrorResponse "No graded answers"
// @Failure 404 {object} dto.ErrorResponse
// @Router /Grading/Aggregate [post]
func (c *GradingController) Aggregate(ctx *gin.Context) {
	var req dto.AggregateRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.gradingService.Aggregate(req.ExamID, req.StudentID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to aggregate grade")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
