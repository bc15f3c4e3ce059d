package reporter

import (
	"github.com/mooncorn/locationtracker/internal/interfaces"
	"github.com/mooncorn/locationtracker/internal/location"
	"github.com/sirupsen/logrus"
)

var _ interfaces.Observer[location.Location] = (*LoggingObserver)(nil)

// LoggingObserver is an observer that logs tracker notifications
type LoggingObserver struct {
	log *logrus.Entry
}

// NewLoggingObserver creates a new LoggingObserver writing to logger
func NewLoggingObserver(name string, logger *logrus.Logger) *LoggingObserver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LoggingObserver{log: logger.WithField("observer", name)}
}

// OnNext logs the location with latitude and longitude fields
func (o *LoggingObserver) OnNext(loc location.Location) {
	o.log.WithFields(logrus.Fields{
		"latitude":  loc.Latitude,
		"longitude": loc.Longitude,
	}).Info("Location update")
}

// OnError logs err at warn level
func (o *LoggingObserver) OnError(err error) {
	o.log.WithError(err).Warn("Location unavailable")
}

// OnCompleted logs the end of the stream
func (o *LoggingObserver) OnCompleted() {
	o.log.Info("Location stream completed")
}
