package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/examhub/config"
	"github.com/lshigami/examhub/docs"
	adminctrl "github.com/lshigami/examhub/internal/controller/admin"
	userctrl "github.com/lshigami/examhub/internal/controller/user"
	"github.com/lshigami/examhub/internal/metrics"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())
	r.Use(metrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Location"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/healthz", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", metrics.Handler())

	docs.SwaggerInfo.Host = "localhost:" + cfg.Server.Port
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r
}

type controllers struct {
	fx.In

	Classes    *adminctrl.ClassController
	Exams      *adminctrl.ExamController
	ClassExams *adminctrl.ClassExamController
	Questions  *adminctrl.QuestionController
	Grading    *adminctrl.GradingController
	Grades     *adminctrl.GradeController
	Messages   *adminctrl.MessageController
	Users      *userctrl.UserController
	Answers    *userctrl.AnswerController
}

func registerRoutes(router *gin.Engine, c controllers) {
	api := router.Group("/api")
	{
		classes := api.Group("/Classes")
		classes.POST("", c.Classes.CreateClass)
		classes.GET("", c.Classes.ListClasses)
		classes.GET("/:id", c.Classes.GetClass)
		classes.PUT("/:id", c.Classes.UpdateClass)
		classes.DELETE("/:id", c.Classes.DeleteClass)
		classes.GET("/:id/ClassExams", c.Classes.ListClassExams)
		classes.GET("/:id/Messages", c.Classes.ListMessages)

		exams := api.Group("/Exams")
		exams.POST("", c.Exams.CreateExam)
		exams.GET("", c.Exams.ListExams)
		exams.GET("/:id", c.Exams.GetExam)
		exams.PUT("/:id", c.Exams.UpdateExam)
		exams.DELETE("/:id", c.Exams.DeleteExam)
		exams.GET("/:id/Questions", c.Exams.GetQuestionsByExam)
		exams.GET("/:id/ClassExams", c.Exams.ListClassExams)

		classExams := api.Group("/ClassExams")
		classExams.POST("", c.ClassExams.CreateClassExam)
		classExams.GET("/:id", c.ClassExams.GetClassExam)
		classExams.DELETE("/:id", c.ClassExams.DeleteClassExam)
		classExams.GET("/:id/Questions", c.ClassExams.GetQuestions)

		questions := api.Group("/Questions")
		questions.POST("", c.Questions.CreateQuestion)
		questions.POST("/batch", c.Questions.CreateQuestions)
		questions.POST("/Generate", c.Questions.GenerateQuestions)
		questions.GET("/:id", c.Questions.GetQuestion)
		questions.PUT("/:id", c.Questions.UpdateQuestion)
		questions.DELETE("/:id", c.Questions.DeleteQuestion)
		questions.GET("/:id/StudentAnswers", c.Questions.ListAnswers)

		answers := api.Group("/StudentAnswers")
		answers.POST("", c.Answers.SubmitAnswers)
		answers.GET("", c.Answers.ListAnswers)
		answers.GET("/:id", c.Answers.GetAnswer)
		answers.PUT("/:id/Grade", c.Grading.GradeAnswer)

		grading := api.Group("/Grading")
		grading.POST("/Auto", c.Grading.AutoGrade)
		grading.POST("/External", c.Grading.ApplyExternalGrades)
		grading.POST("/Aggregate", c.Grading.Aggregate)

		grades := api.Group("/Grades")
		grades.POST("", c.Grades.SaveGrade)
		grades.PUT("", c.Grades.SaveGrade)
		grades.GET("", c.Grades.ListGrades)
		grades.GET("/:id", c.Grades.GetGrade)
		grades.DELETE("/:id", c.Grades.DeleteGrade)

		messages := api.Group("/Messages")
		messages.POST("", c.Messages.SendMessage)
		messages.DELETE("/:id", c.Messages.DeleteMessage)

		users := api.Group("/Users")
		users.POST("/register", c.Users.Register)
		users.POST("/login", c.Users.Login)
		users.GET("", c.Users.ListUsers)
		users.GET("/:email", c.Users.GetUser)
	}
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(lc fx.Lifecycle, router *gin.Engine, cfg *config.Config, c controllers) {
	registerRoutes(router, c)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("ExamHub API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
