package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/anjiri1684/workhub/configs"
	"github.com/anjiri1684/workhub/database"
	"github.com/anjiri1684/workhub/handlers"
	"github.com/anjiri1684/workhub/jobs"
	"github.com/anjiri1684/workhub/logging"
	"github.com/anjiri1684/workhub/notifications"
	"github.com/anjiri1684/workhub/peers"
	"github.com/anjiri1684/workhub/repository"
	"github.com/anjiri1684/workhub/routes"
	"github.com/anjiri1684/workhub/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg)

	db, err := database.ConnectDB(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("connect postgres", "err", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate postgres", "err", err)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	mongoClient, mongoDB, err := database.ConnectMongo(startCtx, cfg.MongoURL, cfg.MongoDatabase)
	if err != nil {
		cancel()
		log.Fatal("connect mongo", "err", err)
	}
	if err := repository.EnsureMongoIndexes(startCtx, mongoDB); err != nil {
		cancel()
		log.Fatal("create mongo indexes", "err", err)
	}
	cancel()

	clock := services.NewClock()
	conversationRepo := repository.NewConversationRepository(mongoDB)
	conversationSvc := services.NewConversationService(conversationRepo, clock, log)
	messageSvc := services.NewMessageService(repository.NewMessageRepository(mongoDB), conversationRepo, clock, log)
	reportSvc := services.NewReportService(repository.NewReportRepository(db), clock, log)
	gateway := peers.NewGateway(cfg.Peers, log)

	reminder := &jobs.ReportReminder{
		Reports:      reportSvc,
		Users:        gateway.Users,
		Mailer:       notifications.NewBrevoService(cfg.Email, log),
		ServiceToken: cfg.ServiceToken,
		After:        cfg.ReminderAfter,
		Timeout:      5 * time.Minute,
		Logger:       log.With("job", "report-reminder"),
	}
	c := cron.New()
	if _, err := reminder.Schedule(c, cfg.ReminderSchedule); err != nil {
		log.Fatal("schedule report reminder", "schedule", cfg.ReminderSchedule, "err", err)
	}
	c.Start()
	log.Info("cron job for report reminders scheduled", "schedule", cfg.ReminderSchedule)

	app := fiber.New(fiber.Config{
		Prefork:       false,
		AppName:       "Workhub",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		BodyLimit:     32 << 20,
		ErrorHandler:  handlers.ErrorHandler(log),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length",
		MaxAge:        86400,
	}))
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.Register(app, cfg.JWTSecret, routes.Handlers{
		Messaging: &handlers.MessagingHandler{
			Conversations: conversationSvc,
			Messages:      messageSvc,
			Users:         gateway.Users,
			Departments:   gateway.Departments,
			Projects:      gateway.Projects,
			Logger:        log,
		},
		Uploads: &handlers.UploadHandler{
			Documents:     gateway.Documents,
			Conversations: conversationSvc,
		},
		Reports: &handlers.ReportHandler{
			Reports: reportSvc,
			Tasks:   gateway.Tasks,
		},
		Onboarding: &handlers.OnboardingHandler{
			Users:         gateway.Users,
			Departments:   gateway.Departments,
			Conversations: conversationSvc,
			Messages:      messageSvc,
			Logger:        log,
		},
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		<-c.Stop().Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server shutdown", "err", err)
		}
	}()

	log.Info("server is running", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server failed to start", "err", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Error("disconnect mongo", "err", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
