package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/KOFI-GYIMAH/github-connector/pkg/errors"
	"github.com/KOFI-GYIMAH/github-connector/pkg/logger"
	"github.com/joho/godotenv"
)

// * DefaultRepository is the repository the connector serves unless REPOSITORY overrides it
const DefaultRepository = "AllenNeuralDynamics/aind-scicomp-nautilex"

const (
	DefaultPerPage    = 30
	DefaultPage       = 1
	DefaultState      = "open"
	DefaultServerPort = ":8081"
	DefaultQueueName  = "github_connector_invocations"
)

type Config struct {
	GitHubToken string
	Repository  string
	Owner       string
	Name        string

	// * Listing parameters, fixed for every upstream call
	PerPage int
	Page    int
	State   string

	ServerPort  string
	RabbitMQURL string
	QueueName   string
	AuditDBURL  string
	Debug       bool
}

// * LoadConfiguration reads the configuration from the environment (and .env when present)
func LoadConfiguration() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		GitHubToken: os.Getenv("GITHUB_TOKEN"),
		Repository:  os.Getenv("REPOSITORY"),
		ServerPort:  os.Getenv("SERVER_PORT"),
		RabbitMQURL: os.Getenv("RabbitMQURL"),
		QueueName:   os.Getenv("QUEUE_NAME"),
		AuditDBURL:  os.Getenv("AUDIT_DB_URL"),
		Debug:       os.Getenv("DEBUG") == "true",
	}

	if cfg.GitHubToken == "" {
		return nil, errors.New(errors.RefConfiguration, "Missing configuration", "GITHUB_TOKEN is required", nil, errors.LevelFatal)
	}

	if cfg.Repository == "" {
		cfg.Repository = DefaultRepository
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = DefaultServerPort
	}

	if cfg.QueueName == "" {
		cfg.QueueName = DefaultQueueName
	}

	owner, name, err := ParseRepository(cfg.Repository)
	if err != nil {
		return nil, errors.New(errors.RefConfiguration, "Invalid REPOSITORY", err.Error(), err, errors.LevelFatal)
	}
	cfg.Owner, cfg.Name = owner, name

	cfg.PerPage = DefaultPerPage
	cfg.Page = DefaultPage
	cfg.State = DefaultState

	logger.Info("✅ env content loaded successfully, serving %s", cfg.Repository)
	return cfg, nil
}

// * New builds a Config for an explicit repository with the default listing parameters
func New(token, repository string) (*Config, error) {
	owner, name, err := ParseRepository(repository)
	if err != nil {
		return nil, err
	}

	return &Config{
		GitHubToken: token,
		Repository:  repository,
		Owner:       owner,
		Name:        name,
		PerPage:     DefaultPerPage,
		Page:        DefaultPage,
		State:       DefaultState,
		ServerPort:  DefaultServerPort,
		QueueName:   DefaultQueueName,
	}, nil
}

// * ParseRepository takes a string in the format owner/name and returns the
// * owner and name as two separate strings. If the string does not match
// * the expected format, an error is returned.
func ParseRepository(repo string) (owner, name string, err error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository should be in format owner/name, got %q", repo)
	}
	return parts[0], parts[1], nil
}
