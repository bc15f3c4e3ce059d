package tracker

import (
	"github.com/mooncorn/locationtracker/internal/interfaces"
	"github.com/mooncorn/locationtracker/internal/location"
	"github.com/mooncorn/locationtracker/internal/observable"
	"github.com/sirupsen/logrus"
)

var _ interfaces.Observable[location.Location] = (*LocationTracker)(nil)

// LocationTrackerConfig holds the dependencies for LocationTracker
type LocationTrackerConfig struct {
	Name    string
	Logger  *logrus.Logger
	OnPanic func(registrationID string, recovered any)
}

// LocationTracker publishes location readings to subscribed reporters
type LocationTracker struct {
	subject *observable.Subject[location.Location]
	log     *logrus.Entry
}

// NewLocationTracker creates a new LocationTracker instance
func NewLocationTracker(config LocationTrackerConfig) *LocationTracker {
	name := config.Name
	if name == "" {
		name = "location-tracker"
	}

	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &LocationTracker{
		subject: observable.New[location.Location](observable.Config{
			Name:       name,
			Logger:     logger,
			UnknownErr: location.ErrLocationUnknown,
			OnPanic:    config.OnPanic,
		}),
		log: logger.WithField("tracker", name),
	}
}

// Subscribe registers a reporter for location updates
func (t *LocationTracker) Subscribe(observer interfaces.Observer[location.Location]) interfaces.Subscription {
	return t.subject.Subscribe(observer)
}

// Unsubscribe removes a reporter from location updates
func (t *LocationTracker) Unsubscribe(observer interfaces.Observer[location.Location]) {
	t.subject.Unsubscribe(observer)
}

// TrackLocation publishes a reading. Unknown readings reach reporters through
// OnError with location.ErrLocationUnknown.
func (t *LocationTracker) TrackLocation(reading location.Reading) {
	if loc, ok := reading.Get(); ok {
		t.log.WithFields(logrus.Fields{
			"latitude":  loc.Latitude,
			"longitude": loc.Longitude,
			"observers": t.subject.Len(),
		}).Debug("Tracking location")
	} else {
		t.log.WithField("observers", t.subject.Len()).Debug("Tracking unknown location")
	}

	t.subject.Emit(reading)
}

// EndTransmission notifies all reporters of completion and drops them
func (t *LocationTracker) EndTransmission() {
	t.log.WithField("observers", t.subject.Len()).Debug("Ending transmission")
	t.subject.Complete()
}

// ObserverCount returns the number of subscribed reporters
func (t *LocationTracker) ObserverCount() int {
	return t.subject.Len()
}

// Stats returns notification metrics of the underlying subject
func (t *LocationTracker) Stats() observable.Stats {
	return t.subject.Stats()
}
