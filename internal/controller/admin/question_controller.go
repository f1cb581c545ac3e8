package admin

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examhub/internal/controller"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/service"
	"github.com/rs/zerolog/log"
)

type QuestionController struct {
	questionService service.QuestionService
	answerService   service.AnswerSubmissionService
	generator       service.QuestionGenerator
}

func NewQuestionController(qs service.QuestionService, as service.AnswerSubmissionService, gen service.QuestionGenerator) *QuestionController {
	return &QuestionController{questionService: qs, answerService: as, generator: gen}
}

// CreateQuestion godoc
// @Summary Create a question
// @Description Fields required or forbidden depend on QuestionType (open, mc, truefalse, matching, photo, photowithtext).
// @Description Options may be a JSON array or a comma separated string; Pairs may be a JSON array or a JSON string.
// @Tags Questions
// @Accept json
// @Produce json
// @Param question body dto.QuestionRequest true "Question data"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "ClassExam not found"
// @Router /Questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req dto.QuestionRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.questionService.CreateQuestion(req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create question")
		return
	}
	controller.Created(ctx, "/api/Questions/"+resp.ID, resp)
}

// CreateQuestions godoc
// @Summary Create several questions at once
// @Description Every question is validated first; nothing is stored unless all of them are valid.
// @Tags Questions
// @Accept json
// @Produce json
// @Param questions body []dto.QuestionRequest true "Questions"
// @Success 201 {array} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /Questions/batch [post]
func (c *QuestionController) CreateQuestions(ctx *gin.Context) {
	var reqs []dto.QuestionRequest
	if !controller.BindJSON(ctx, &reqs) {
		return
	}
	resp, err := c.questionService.CreateQuestions(reqs)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create questions")
		return
	}
	respondCreatedQuestions(ctx, resp)
}

// GenerateQuestions godoc
// @Summary Generate questions with Gemini
// @Description Asks the model for questions on a topic and stores the valid batch. Photo types are not supported.
// @Tags Questions
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuestionsRequest true "Generation request"
// @Success 201 {array} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse "Gemini is not configured"
// @Router /Questions/Generate [post]
func (c *QuestionController) GenerateQuestions(ctx *gin.Context) {
	var req dto.GenerateQuestionsRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	log.Info().Uint("classExamId", req.ClassExamID).Str("type", req.QuestionType).Int("count", req.Count).Msg("Generating questions")
	resp, err := c.generator.Generate(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to generate questions")
		return
	}
	respondCreatedQuestions(ctx, resp)
}

// respondCreatedQuestions points Location at the class exam's question list.
func respondCreatedQuestions(ctx *gin.Context, resp []dto.QuestionResponse) {
	if len(resp) == 0 {
		ctx.JSON(http.StatusCreated, resp)
		return
	}
	controller.Created(ctx, fmt.Sprintf("/api/ClassExams/%d/Questions", resp[0].ClassExamID), resp)
}

// GetQuestion godoc
// @Summary Get a question
// @Tags Questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /Questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	resp, err := c.questionService.GetQuestion(ctx.Param("id"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve question")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateQuestion godoc
// @Summary Replace a question
// @Tags Questions
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param question body dto.QuestionRequest true "Question data"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /Questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	var req dto.QuestionRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.questionService.UpdateQuestion(ctx.Param("id"), req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to update question")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteQuestion godoc
// @Summary Delete a question and its answers
// @Tags Questions
// @Param id path string true "Question ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /Questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	if err := c.questionService.DeleteQuestion(ctx.Param("id")); err != nil {
		controller.RespondError(ctx, err, "Failed to delete question")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ListAnswers godoc
// @Summary List every answer given to a question
// @Tags StudentAnswers
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {array} dto.StudentAnswerResponse
// @Router /Questions/{id}/StudentAnswers [get]
func (c *QuestionController) ListAnswers(ctx *gin.Context) {
	resp, err := c.answerService.ListByQuestion(ctx.Param("id"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve answers")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
