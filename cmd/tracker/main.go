package main

import (
	"fmt"
	"os"

	"github.com/mooncorn/locationtracker/internal/config"
	"github.com/mooncorn/locationtracker/internal/reporter"
	"github.com/mooncorn/locationtracker/internal/scenario"
	"github.com/mooncorn/locationtracker/internal/tracker"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

// BuildVersion is set at link time
var BuildVersion = "dev"

// Loaded by initConfig before the action runs
var cfg *config.Config

func main() {
	app := cli.NewApp()
	app.Name = "tracker"
	app.Usage = "publish location readings to subscribed reporters"
	app.Version = BuildVersion
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config,c",
			Usage: "config file; the built-in scenario runs when no scenario is configured",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "override the configured log level",
		},
	}
	app.Before = initConfig
	app.Action = start

	if err := app.Run(os.Args); err != nil {
		logrus.Errorf("failed to run application: %v", err)
		os.Exit(1)
	}
}

func initConfig(c *cli.Context) error {
	loaded, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if level := c.String("log-level"); level != "" {
		loaded.Log.Level = level
	}

	logrus.SetOutput(os.Stderr)
	if err := loaded.Log.Apply(logrus.StandardLogger()); err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}

	cfg = loaded
	return nil
}

func start(c *cli.Context) error {
	logger := logrus.StandardLogger()

	reporters, steps := cfg.Reporters, cfg.Scenario
	if len(steps) == 0 {
		logger.Info("No scenario configured, running built-in scenario")
		reporters, steps = scenario.Default()
	}

	locationTracker := tracker.NewLocationTracker(tracker.LocationTrackerConfig{
		Name:   "location-tracker",
		Logger: logger,
	})

	if cfg.Log.LogEvents {
		locationTracker.Subscribe(reporter.NewLoggingObserver("event-log", logger))
	}

	runner := scenario.NewRunner(scenario.RunnerConfig{
		Tracker:   locationTracker,
		Reporters: reporters,
		Output:    os.Stdout,
		Logger:    logger,
	})

	if err := runner.Run(steps); err != nil {
		return err
	}

	stats := locationTracker.Stats()
	logger.WithFields(logrus.Fields{
		"delivered": stats.Delivered,
		"recovered": stats.Recovered,
	}).Debug("Tracker stopped")
	return nil
}
