package scenario

import "github.com/mooncorn/locationtracker/internal/config"

// Default returns the demonstration script: two GPS reporters, two fixes,
// one lost fix and the end of transmission
func Default() (reporters []string, steps []config.Step) {
	reporters = []string{"FixedGPS", "MobileGPS"}
	steps = []config.Step{
		{Action: config.ActionSubscribe, Reporter: "FixedGPS"},
		{Action: config.ActionSubscribe, Reporter: "MobileGPS"},
		track(47.6456, -122.1312),
		{Action: config.ActionUnsubscribe, Reporter: "FixedGPS"},
		track(47.6677, -122.1199),
		{Action: config.ActionTrack},
		{Action: config.ActionEnd},
	}
	return reporters, steps
}

func track(latitude, longitude float64) config.Step {
	return config.Step{
		Action:    config.ActionTrack,
		Latitude:  &latitude,
		Longitude: &longitude,
	}
}
