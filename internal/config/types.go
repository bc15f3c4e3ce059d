package config

// Scenario step actions
const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
	ActionTrack       = "track"
	ActionEnd         = "end"
)

// Log output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

type Config struct {
	Log       LogS     `mapstructure:"log"`
	Reporters []string `mapstructure:"reporters"`
	Scenario  []Step   `mapstructure:"scenario"`
}

type LogS struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
	// Attach a logging observer to the tracker
	LogEvents bool `mapstructure:"log_events"`
}

// Step is one driver action. A track step without coordinates emits an
// unknown location.
type Step struct {
	Action    string   `mapstructure:"action"`
	Reporter  string   `mapstructure:"reporter"`
	Latitude  *float64 `mapstructure:"latitude"`
	Longitude *float64 `mapstructure:"longitude"`
}

// HasLocation reports whether the step carries coordinates
func (s Step) HasLocation() bool {
	return s.Latitude != nil && s.Longitude != nil
}
