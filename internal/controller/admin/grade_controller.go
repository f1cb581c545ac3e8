package admin

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examhub/internal/controller"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/service"
)

type GradeController struct {
	gradeService service.GradeService
}

func NewGradeController(gs service.GradeService) *GradeController {
	return &GradeController{gradeService: gs}
}

// SaveGrade godoc
// @Summary Create or update a grade
// @Description A GradeId that names an existing row updates it; otherwise a new grade is created.
// @Tags Grades
// @Accept json
// @Produce json
// @Param grade body dto.GradeRequest true "Grade"
// @Success 200 {object} dto.GradeResponse "Updated"
// @Success 201 {object} dto.GradeResponse "Created"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /Grades [post]
// @Router /Grades [put]
func (c *GradeController) SaveGrade(ctx *gin.Context) {
	var req dto.GradeRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, created, err := c.gradeService.SaveGrade(req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to save grade")
		return
	}
	if created {
		controller.Created(ctx, fmt.Sprintf("/api/Grades/%d", resp.ID), resp)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// @Summary Get a grade
// @Tags Grades
// @Produce json
// @Param id path int true "Grade ID"
// @Success 200 {object} dto.GradeResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /Grades/{id} [get]
func (c *GradeController) GetGrade(ctx *gin.Context) {
	id, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.gradeService.GetGrade(id)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve grade")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// @Summary List grades by student, by exam, or both
// @Tags Grades
// @Produce json
// @Param studentId query string false "Student ID"
// @Param examId query int false "Exam ID"
// @Success 200 {array} dto.GradeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /Grades [get]
func (c *GradeController) ListGrades(ctx *gin.Context) {
	examID, ok := controller.UintQuery(ctx, "examId")
	if !ok {
		return
	}
	resp, err := c.gradeService.ListGrades(ctx.Query("studentId"), examID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve grades")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// @Summary Delete a grade
// @Tags Grades
// @Param id path int true "Grade ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /Grades/{id} [delete]
func (c *GradeController) DeleteGrade(ctx *gin.Context) {
	id, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.gradeService.DeleteGrade(id); err != nil {
		controller.RespondError(ctx, err, "Failed to delete grade")
		return
	}
	ctx.Status(http.StatusNoContent)
}
