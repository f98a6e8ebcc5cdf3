package main

import (
	"ohcm/config"
	"ohcm/services/hr/delivery"
	"ohcm/services/hr/repository"
	"ohcm/services/hr/usecase"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var log *logrus.Logger
var wg sync.WaitGroup

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on environment")
	}

	log = config.GetLogrusInstance()

	startHTTP()
}

func startHTTP() {
	log.Info("Starting HTTP")
	app := fiber.New(config.GetFiberConfig())

	// CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	db, err := config.BootDB()
	if err != nil {
		log.Fatalf("Failed to boot DB: %v", err)
		return
	}

	cipher := config.NewCNICCipher()

	// Regis repo and Usecase Here
	hrRepo := repository.NewHRImportRepository(db, cipher)
	hrUC := usecase.NewHRImportUseCase(hrRepo, 5*time.Minute)

	userRepo := repository.NewUserRepository(db)
	userUC := usecase.NewUserUseCase(userRepo)

	// delivery here
	delivery.NewHRImportHandlerDeploy(app, hrUC)
	delivery.NewAuthHandlerDeploy(app, userUC)

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("Starting HTTP server for Public on port %s", config.GetFiberHttpPort())
		if err := app.Listen(config.GetFiberListenAddress()); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, os.Kill)

	<-signalChan

	log.Info("Shutting down the server...")

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	wg.Wait()
	log.Info("Server shut down gracefully")
}
