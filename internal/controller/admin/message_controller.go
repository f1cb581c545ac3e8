package admin

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examhub/internal/controller"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/service"
)

type MessageController struct {
	messageService service.MessageService
}

func NewMessageController(ms service.MessageService) *MessageController {
	return &MessageController{messageService: ms}
}

// SendMessage godoc
// @Summary Send a message to a class
// @Description Only the class teacher may send.
// @Tags Messages
// @Accept json
// @Produce json
// @Param message body dto.MessageRequest true "Message"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /Messages [post]
func (c *MessageController) SendMessage(ctx *gin.Context) {
	var req dto.MessageRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.messageService.SendMessage(req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to send message")
		return
	}
	controller.Created(ctx, fmt.Sprintf("/api/Messages/%d", resp.ID), resp)
}

// @Summary Delete a message
// @Tags Messages
// @Param id path int true "Message ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /Messages/{id} [delete]
func (c *MessageController) DeleteMessage(ctx *gin.Context) {
	id, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.messageService.DeleteMessage(id); err != nil {
		controller.RespondError(ctx, err, "Failed to delete message")
		return
	}
	ctx.Status(http.StatusNoContent)
}
