package scenario

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/mooncorn/locationtracker/internal/config"
	"github.com/mooncorn/locationtracker/internal/tracker"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRunner(t *testing.T, reporters []string, out io.Writer) (*Runner, *tracker.LocationTracker) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tr := tracker.NewLocationTracker(tracker.LocationTrackerConfig{Logger: logger})
	runner := NewRunner(RunnerConfig{
		Tracker:   tr,
		Reporters: reporters,
		Output:    out,
		Logger:    logger,
	})
	return runner, tr
}

func TestRunner_Default(t *testing.T) {
	var out bytes.Buffer
	reporters, steps := Default()
	runner, tr := setupRunner(t, reporters, &out)

	require.NoError(t, runner.Run(steps))

	assert.Equal(t, []string{
		"FixedGPS: The current location is 47.6456, -122.1312",
		"MobileGPS: The current location is 47.6456, -122.1312",
		"MobileGPS: The current location is 47.6677, -122.1199",
		"MobileGPS: The location cannot be determined.",
		"The Location Tracker has completed transmitting data to MobileGPS.",
	}, strings.Split(strings.TrimSpace(out.String()), "\n"))
	assert.Equal(t, 0, tr.ObserverCount())

	for _, name := range reporters {
		rep, ok := runner.Reporter(name)
		require.True(t, ok)
		assert.False(t, rep.Subscribed(), name)
	}
}

func TestRunner_Errors(t *testing.T) {
	tests := []struct {
		name    string
		step    config.Step
		wantErr error
	}{
		{
			name:    "subscribe unknown reporter",
			step:    config.Step{Action: config.ActionSubscribe, Reporter: "ghost"},
			wantErr: ErrUnknownReporter,
		},
		{
			name:    "unsubscribe unknown reporter",
			step:    config.Step{Action: config.ActionUnsubscribe, Reporter: "ghost"},
			wantErr: ErrUnknownReporter,
		},
		{
			name:    "unknown action",
			step:    config.Step{Action: "rewind"},
			wantErr: ErrUnknownAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, _ := setupRunner(t, []string{"known"}, io.Discard)

			err := runner.Run([]config.Step{tt.step})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRunner_StopsAtFirstFailure(t *testing.T) {
	var out bytes.Buffer
	runner, tr := setupRunner(t, []string{"a"}, &out)

	err := runner.Run([]config.Step{
		{Action: config.ActionSubscribe, Reporter: "a"},
		{Action: "bogus"},
		{Action: config.ActionEnd},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step #1")

	assert.Equal(t, 1, tr.ObserverCount())
	assert.Empty(t, out.String())
}

func TestRunner_UnsubscribeBeforeSubscribe(t *testing.T) {
	runner, tr := setupRunner(t, []string{"a"}, io.Discard)

	require.NoError(t, runner.Run([]config.Step{
		{Action: config.ActionUnsubscribe, Reporter: "a"},
		{Action: config.ActionUnsubscribe, Reporter: "a"},
		{Action: config.ActionTrack},
	}))
	assert.Equal(t, 0, tr.ObserverCount())
}
