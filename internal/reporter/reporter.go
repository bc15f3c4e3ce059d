package reporter

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mooncorn/locationtracker/internal/interfaces"
	"github.com/mooncorn/locationtracker/internal/location"
	"github.com/mooncorn/locationtracker/internal/observable"
	"github.com/sirupsen/logrus"
)

var _ interfaces.Observer[location.Location] = (*LocationReporter)(nil)

// LocationReporterConfig holds the settings for a LocationReporter
type LocationReporterConfig struct {
	Name   string
	Output io.Writer // defaults to os.Stdout
	Logger *logrus.Logger
}

// LocationReporter prints every notification it receives and unsubscribes
// itself when the tracker completes
type LocationReporter struct {
	name string
	log  *logrus.Entry

	outMu sync.Mutex
	out   io.Writer

	mu           sync.Mutex
	unsubscriber interfaces.Subscription
	provider     interfaces.Observable[location.Location]
}

// NewLocationReporter creates a new LocationReporter instance
func NewLocationReporter(config LocationReporterConfig) *LocationReporter {
	out := config.Output
	if out == nil {
		out = os.Stdout
	}

	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &LocationReporter{
		name: config.Name,
		out:  out,
		log:  logger.WithField("reporter", config.Name),
	}
}

// Name returns the display name of the reporter
func (r *LocationReporter) Name() string {
	return r.name
}

// Subscribe registers the reporter with provider and keeps the handle.
// A handle for a different provider is released first. Subscribing to the same
// provider again keeps the reporter's place in the delivery order.
func (r *LocationReporter) Subscribe(provider interfaces.Observable[location.Location]) {
	if observable.IsNil(provider) {
		r.log.Debug("Ignoring subscribe to nil provider")
		return
	}

	r.mu.Lock()
	previous, previousProvider := r.unsubscriber, r.provider
	r.unsubscriber, r.provider = nil, nil
	r.mu.Unlock()

	if previous != nil && !observable.SameIdentity(previousProvider, provider) {
		previous.Unsubscribe()
	}

	sub := provider.Subscribe(r)

	r.mu.Lock()
	r.unsubscriber, r.provider = sub, provider
	r.mu.Unlock()

	r.log.WithField("registration", sub.ID()).Debug("Reporter subscribed")
}

// Unsubscribe releases the stored handle. Without a handle it does nothing.
func (r *LocationReporter) Unsubscribe() {
	r.mu.Lock()
	sub := r.unsubscriber
	r.unsubscriber, r.provider = nil, nil
	r.mu.Unlock()

	if sub == nil {
		r.log.Debug("Unsubscribe without active subscription")
		return
	}

	sub.Unsubscribe()
	r.log.WithField("registration", sub.ID()).Debug("Reporter unsubscribed")
}

// Subscribed reports whether the reporter holds a subscription handle
func (r *LocationReporter) Subscribed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unsubscriber != nil
}

// OnNext prints the current location
func (r *LocationReporter) OnNext(loc location.Location) {
	r.printf("%s: The current location is %s\n", r.name, loc)
}

// OnError prints that the location cannot be determined. The reporter stays subscribed.
func (r *LocationReporter) OnError(err error) {
	r.log.WithError(err).Debug("Location error received")
	r.printf("%s: The location cannot be determined.\n", r.name)
}

// OnCompleted prints the end of transmission and unsubscribes the reporter
func (r *LocationReporter) OnCompleted() {
	r.printf("The Location Tracker has completed transmitting data to %s.\n", r.name)
	r.Unsubscribe()
}

func (r *LocationReporter) printf(format string, args ...any) {
	r.outMu.Lock()
	defer r.outMu.Unlock()

	if _, err := fmt.Fprintf(r.out, format, args...); err != nil {
		r.log.WithError(err).Warn("Failed to write report")
	}
}
