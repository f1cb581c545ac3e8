package main

import (
	"context"
	"os"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/examhub/config"
	"github.com/lshigami/examhub/database"
	adminctrl "github.com/lshigami/examhub/internal/controller/admin"
	userctrl "github.com/lshigami/examhub/internal/controller/user"
	"github.com/lshigami/examhub/internal/logger"
	"github.com/lshigami/examhub/internal/metrics"
	"github.com/lshigami/examhub/internal/repository"
	"github.com/lshigami/examhub/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title ExamHub API
// @version 1.0
// @description Classes, exams, questions, answer submission, grading and class messaging for the mobile client.
// @contact.name API Support
// @host localhost:8080
// @BasePath /api
// @schemes http https
func main() {
	root := &cobra.Command{
		Use:   "examhub",
		Short: "Exam management backend",
		RunE:  func(cmd *cobra.Command, args []string) error { return serve() },
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API (default)",
			RunE:  func(cmd *cobra.Command, args []string) error { return serve() },
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema and exit",
			RunE:  func(cmd *cobra.Command, args []string) error { return migrate() },
		},
	)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() error {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),
		fx.Invoke(initLogger),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewClassRepository,
			repository.NewExamRepository,
			repository.NewClassExamRepository,
			repository.NewQuestionRepository,
			repository.NewStudentAnswerRepository,
			repository.NewGradeRepository,
			repository.NewMessageRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewGeminiClient,
			service.NewGradingProvider,
			service.NewUserService,
			service.NewClassService,
			service.NewExamService,
			service.NewClassExamService,
			service.NewQuestionService,
			service.NewAnswerSubmissionService,
			service.NewGradingService,
			service.NewGradeService,
			service.NewMessageService,
			service.NewQuestionGenerator,
		),

		// API Controllers Layer
		fx.Provide(
			adminctrl.NewClassController,
			adminctrl.NewExamController,
			adminctrl.NewClassExamController,
			adminctrl.NewQuestionController,
			adminctrl.NewGradingController,
			adminctrl.NewGradeController,
			adminctrl.NewMessageController,
			userctrl.NewUserController,
			userctrl.NewAnswerController,
		),

		fx.Invoke(database.AutoMigrate),
		fx.Invoke(closeOnStop),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to start application")
		return err
	}
	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	return app.Stop(context.Background())
}

func migrate() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	logger.Init(cfg.Log)
	db, err := database.NewDatabase(cfg)
	if err != nil {
		return err
	}
	return database.AutoMigrate(db)
}

func initLogger(cfg *config.Config) {
	logger.Init(cfg.Log)
	metrics.Init()
}

// closeOnStop releases the database pool and the Gemini client when the app
// stops. client is nil when GEMINI_API_KEY is unset.
func closeOnStop(lc fx.Lifecycle, db *gorm.DB, client *genai.Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if client != nil {
				if err := client.Close(); err != nil {
					log.Warn().Err(err).Msg("Failed to close Gemini client")
				}
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
}
