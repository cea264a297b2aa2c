package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/slack-go/slack"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	config := loadConfig()

	// Initialize logger with configured level
	SetLogLevel(config.LogLevel)

	if config.SlackBotToken == "" {
		Fatal("SLACK_BOT_TOKEN is required")
	}
	if config.TargetChannelName == "" {
		Fatal("TARGET_CHANNEL_NAME is required")
	}
	if config.JiraBaseURL == "" {
		Fatal("JIRA_BASE_URL is required")
	}
	if config.JiraProjectKey == "" {
		Fatal("JIRA_PROJECT_KEY is required")
	}

	if err := loadAliasOverrides(config.FieldAliasFile); err != nil {
		Fatal("Failed to load field alias file: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup Redis client
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       0,
	})
	defer rdb.Close()

	// Test Redis connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		Fatal("Failed to connect to Redis: %v", err)
	}
	Info("Connected to Redis")

	deps := pipelineDeps{
		slackClient: slack.New(config.SlackBotToken),
		jira:        newJiraClient(config),
		dedup:       newDedupStore(time.Duration(config.DedupTTL) * time.Second),
	}

	go subscribeToReactions(ctx, rdb, deps, config)

	log.Println("reacticket service started")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	Info("Shutting down...")
	cancel()
	time.Sleep(1 * time.Second)
}
