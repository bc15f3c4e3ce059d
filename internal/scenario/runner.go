package scenario

import (
	"errors"
	"fmt"
	"io"

	"github.com/mooncorn/locationtracker/internal/config"
	"github.com/mooncorn/locationtracker/internal/location"
	"github.com/mooncorn/locationtracker/internal/reporter"
	"github.com/mooncorn/locationtracker/internal/tracker"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUnknownReporter is returned when a step names a reporter the runner does not have
	ErrUnknownReporter = errors.New("unknown reporter")
	// ErrUnknownAction is returned for steps with an unsupported action
	ErrUnknownAction = errors.New("unknown action")
)

// RunnerConfig holds the dependencies for Runner
type RunnerConfig struct {
	Tracker   *tracker.LocationTracker
	Reporters []string
	Output    io.Writer // reporter output, defaults to os.Stdout
	Logger    *logrus.Logger
}

// Runner drives a tracker and a fixed set of named reporters through a script
type Runner struct {
	tracker   *tracker.LocationTracker
	reporters map[string]*reporter.LocationReporter
	log       *logrus.Entry
}

// NewRunner creates a Runner with one reporter per name
func NewRunner(config RunnerConfig) *Runner {
	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	reporters := make(map[string]*reporter.LocationReporter, len(config.Reporters))
	for _, name := range config.Reporters {
		reporters[name] = reporter.NewLocationReporter(reporter.LocationReporterConfig{
			Name:   name,
			Output: config.Output,
			Logger: logger,
		})
	}

	return &Runner{
		tracker:   config.Tracker,
		reporters: reporters,
		log:       logger.WithField("component", "scenario"),
	}
}

// Reporter returns the reporter with the given name
func (r *Runner) Reporter(name string) (*reporter.LocationReporter, bool) {
	rep, ok := r.reporters[name]
	return rep, ok
}

// Run executes steps in order and stops at the first failing one
func (r *Runner) Run(steps []config.Step) error {
	r.log.WithField("steps", len(steps)).Info("Running scenario")

	for i, step := range steps {
		if err := r.Step(step); err != nil {
			return fmt.Errorf("step #%d (%s): %w", i, step.Action, err)
		}
	}

	r.log.WithField("observers", r.tracker.ObserverCount()).Info("Scenario finished")
	return nil
}

// Step executes a single action
func (r *Runner) Step(step config.Step) error {
	switch step.Action {
	case config.ActionSubscribe:
		rep, err := r.lookup(step.Reporter)
		if err != nil {
			return err
		}
		rep.Subscribe(r.tracker)

	case config.ActionUnsubscribe:
		rep, err := r.lookup(step.Reporter)
		if err != nil {
			return err
		}
		rep.Unsubscribe()

	case config.ActionTrack:
		reading := location.Unknown()
		if step.HasLocation() {
			reading = location.Known(*step.Latitude, *step.Longitude)
		}
		r.tracker.TrackLocation(reading)

	case config.ActionEnd:
		r.tracker.EndTransmission()

	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, step.Action)
	}
	return nil
}

func (r *Runner) lookup(name string) (*reporter.LocationReporter, error) {
	rep, ok := r.reporters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReporter, name)
	}
	return rep, nil
}
