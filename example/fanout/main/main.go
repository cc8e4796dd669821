package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sicko7947/statepass"
	"github.com/sicko7947/statepass/example/fanout"
	"github.com/sicko7947/statepass/store"
)

// Shared tiers; clients are cheap and constructed per execution
var (
	rows      statepass.RowStore
	blobs     statepass.BlobStore
	tableName string
	bucket    string
)

// initializeApp wires the DynamoDB and S3 tiers from the environment
func initializeApp() {
	// Optional .env for local development
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	})

	tableName = os.Getenv("STATE_TABLE")
	bucket = os.Getenv("STATE_BUCKET")
	if tableName == "" || bucket == "" {
		log.Fatal().Msg("STATE_TABLE and STATE_BUCKET must be set")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load AWS configuration")
	}

	rows = store.NewDynamoDBRowStore(dynamodb.NewFromConfig(awsCfg))
	blobs = store.NewS3BlobStore(s3.NewFromConfig(awsCfg), bucket)

	log.Info().
		Str("table_name", tableName).
		Str("bucket", bucket).
		Msg("State data tiers initialized")
}

// newClient binds a state data client to one execution namespace
func newClient(executionID string) (*statepass.Client, error) {
	return statepass.NewClient(statepass.Config{
		TableName:   tableName,
		ExecutionID: executionID,
		TTLDays:     1,
		Bucket:      bucket,
	}, rows, blobs, statepass.WithLogger(log.Logger))
}

// registerRoutes registers all HTTP routes
func registerRoutes(app *fiber.App) {
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "statepass-fanout-example",
		})
	})

	v1 := app.Group("/api/v1")
	v1.Post("/fanout", handleStartFanout)
	v1.Get("/fanout/:executionId/:key/results", handleGetResults)
}

// handleStartFanout stores the input list and runs one branch per element
func handleStartFanout(c fiber.Ctx) error {
	var req fanout.FanoutRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	executionID := uuid.New().String()
	client, err := newClient(executionID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to construct state data client")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to construct client",
		})
	}

	locator, err := fanout.Run(c.Context(), client, req)
	if err != nil {
		log.Error().Err(err).Str("key", req.Key).Msg("Fan-out failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Fan-out failed",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"executionId": executionID,
		"input":       locator,
	})
}

// handleGetResults gathers branch results for a finished fan-out
func handleGetResults(c fiber.Ctx) error {
	executionID := c.Params("executionId")
	key := c.Params("key")

	client, err := newClient(executionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid execution id",
		})
	}

	results, err := fanout.CollectResults(c.Context(), client, key)
	if err != nil {
		if statepass.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Results not found",
			})
		}
		log.Error().Err(err).Str("key", key).Msg("Failed to collect results")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to collect results",
		})
	}

	return c.JSON(fiber.Map{
		"executionId": executionID,
		"key":         key,
		"results":     results,
	})
}

func main() {
	initializeApp()

	app := fiber.New()
	registerRoutes(app)

	go func() {
		addr := ":3000"
		log.Info().Str("address", addr).Msg("Starting HTTP server")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
