package user

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examhub/internal/controller"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/service"
	"github.com/rs/zerolog/log"
)

type AnswerController struct {
	answerService service.AnswerSubmissionService
}

func NewAnswerController(as service.AnswerSubmissionService) *AnswerController {
	return &AnswerController{answerService: as}
}

// SubmitAnswers godoc
// @Summary Submit the answers of one exam sitting
// @Description Answers already stored for the same question and student are skipped and listed in Skipped.
// @Description The whole batch is rejected if any QuestionId is unknown or does not belong to the exam.
// @Tags StudentAnswers
// @Accept json
// @Produce json
// @Param submission body dto.SubmitAnswersRequest true "Answers"
// @Success 201 {object} dto.SubmitAnswersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Exam or question not found"
// @Router /StudentAnswers [post]
func (c *AnswerController) SubmitAnswers(ctx *gin.Context) {
	var req dto.SubmitAnswersRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	log.Info().Uint("examId", req.ExamID).Str("studentId", req.StudentID).Int("answers", len(req.Answers)).Msg("SubmitAnswers: received")
	resp, err := c.answerService.SubmitAnswers(req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to submit answers")
		return
	}
	query := url.Values{}
	query.Set("examId", strconv.FormatUint(uint64(req.ExamID), 10))
	query.Set("studentId", strings.TrimSpace(req.StudentID))
	controller.Created(ctx, "/api/StudentAnswers?"+query.Encode(), resp)
}

// GetAnswer godoc
// @Summary Get one stored answer
// @Tags StudentAnswers
// @Produce json
// @Param id path string true "StudentAnswer ID"
// @Success 200 {object} dto.StudentAnswerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /StudentAnswers/{id} [get]
func (c *AnswerController) GetAnswer(ctx *gin.Context) {
	resp, err := c.answerService.GetAnswer(ctx.Param("id"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve answer")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListAnswers godoc
// @Summary List the answers of a student for an exam
// @Tags StudentAnswers
// @Produce json
// @Param examId query int true "Exam ID"
// @Param studentId query string true "Student ID"
// @Success 200 {array} dto.StudentAnswerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /StudentAnswers [get]
func (c *AnswerController) ListAnswers(ctx *gin.Context) {
	examID, ok := controller.UintQuery(ctx, "examId")
	if !ok {
		return
	}
	studentID := strings.TrimSpace(ctx.Query("studentId"))
	if examID == 0 || studentID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "examId and studentId query parameters are required"})
		return
	}
	resp, err := c.answerService.ListByExamAndStudent(examID, studentID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve answers")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
