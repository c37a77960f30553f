package main

import (
	"os"

	"github.com/KOFI-GYIMAH/github-connector/internal/app"
	"github.com/KOFI-GYIMAH/github-connector/internal/config"
	"github.com/KOFI-GYIMAH/github-connector/internal/handler"
	"github.com/KOFI-GYIMAH/github-connector/pkg/logger"
	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	// * Load configuration once per cold start
	cfg, err := config.LoadConfiguration()
	if err != nil {
		logger.Error("‼️ Failed to load config: %v", err)
		os.Exit(1)
	}

	dispatcher, cleanup := app.NewDispatcher(cfg)
	defer cleanup()

	lambda.Start(handler.NewLambdaHandler(dispatcher).Handle)
}
