package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KOFI-GYIMAH/github-connector/internal/app"
	"github.com/KOFI-GYIMAH/github-connector/internal/config"
	"github.com/KOFI-GYIMAH/github-connector/internal/models"
	"github.com/KOFI-GYIMAH/github-connector/internal/queue"
	"github.com/KOFI-GYIMAH/github-connector/internal/worker"
	"github.com/KOFI-GYIMAH/github-connector/pkg/logger"
)

func main() {
	invoke := flag.String("invoke", "", "publish one action (e.g. get_issues) to the queue and print the reply")
	timeout := flag.Duration("timeout", 30*time.Second, "per-invocation timeout")
	flag.Parse()

	cfg, err := config.LoadConfiguration()
	if err != nil {
		logger.Error("‼️ Failed to load config: %v", err)
		os.Exit(1)
	}

	if cfg.RabbitMQURL == "" {
		logger.Error("RabbitMQURL is required")
		os.Exit(1)
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL, cfg.QueueName)
	if err != nil {
		logger.Error("Failed to initialize RabbitMQ: %v", err)
		os.Exit(1)
	}
	defer rabbitMQ.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// * Client mode: send one event and print the reply
	if *invoke != "" {
		callCtx, callCancel := context.WithTimeout(ctx, *timeout)
		defer callCancel()

		resp, err := rabbitMQ.Invoke(callCtx, models.Event{Action: *invoke})
		if err != nil {
			logger.Error("Invocation failed: %v", err)
			os.Exit(1)
		}
		fmt.Printf("%d %s\n", resp.StatusCode, resp.Body)
		return
	}

	dispatcher, cleanup := app.NewDispatcher(cfg)
	defer cleanup()

	w := worker.NewInvocationWorker(rabbitMQ, dispatcher, *timeout)
	if err := w.Run(ctx); err != nil {
		os.Exit(1)
	}
}
