package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"jobsite-tracker/internal/cli"
	"jobsite-tracker/internal/config"
	"jobsite-tracker/internal/services"
)

func main() {
	factory := NewRepositoryFactory(getEnvironment())

	open := func(cfg *config.Config, logger logrus.FieldLogger) (*services.Container, func() error, error) {
		repo, err := factory.CreateRepository(cfg)
		if err != nil {
			return nil, nil, err
		}
		return services.NewContainer(repo, cfg, logger), repo.Close, nil
	}

	if err := cli.NewRootCommand(open).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
