package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examhub/internal/controller"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/service"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(us service.UserService) *UserController {
	return &UserController{userService: us}
}

// Register godoc
// @Summary Register a teacher or student account
// @Tags Users
// @Accept json
// @Produce json
// @Param user body dto.RegisterRequest true "Account data"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /Users/register [post]
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.userService.Register(req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to register user")
		return
	}
	controller.Created(ctx, "/api/Users/"+resp.Email, resp)
}

// Login godoc
// @Summary Check credentials
// @Description Returns the account on success. No session or token is issued.
// @Tags Users
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Email and password"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /Users/login [post]
func (c *UserController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.userService.Login(req)
	if err != nil {
		controller.RespondError(ctx, err, "Invalid email or password")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetUser godoc
// @Summary Get an account by email
// @Tags Users
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /Users/{email} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	resp, err := c.userService.GetByEmail(ctx.Param("email"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve user")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListUsers godoc
// @Summary List teachers or students
// @Tags Users
// @Produce json
// @Param role query string true "teacher or student"
// @Success 200 {array} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /Users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	resp, err := c.userService.ListByRole(ctx.Query("role"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve users")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
