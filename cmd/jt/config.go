package main

import (
	"fmt"
	"os"

	"jobsite-tracker/internal/config"
	"jobsite-tracker/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env Environment
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment) *RepositoryFactory {
	return &RepositoryFactory{env: env}
}

// CreateRepository opens the database for the environment. Production uses
// the configured database path.
func (rf *RepositoryFactory) CreateRepository(cfg *config.Config) (*sqlite.SQLiteRepository, error) {
	switch rf.env {
	case Development:
		repo, err := sqlite.New("jobsite-dev.db")
		if err != nil {
			return nil, fmt.Errorf("failed to initialize development database: %w", err)
		}
		return repo, nil
	case Testing:
		return config.CreateTestRepository()
	default:
		return config.CreateRepository(cfg)
	}
}

// getEnvironment reads JT_ENV, defaulting to production
func getEnvironment() Environment {
	switch Environment(os.Getenv("JT_ENV")) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		return Production
	}
}
