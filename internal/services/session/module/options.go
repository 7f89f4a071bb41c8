package module

import (
	"time"

	"cardsmith/internal/platform/config"
)

// Options holds configuration settings for the session module
type Options struct {
	Quota     int
	Window    time.Duration
	Supersede bool
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	sf := cfg.Prefix("CORE_SESSION_")
	return Options{
		Quota:     sf.MayInt("QUOTA", 3),
		Window:    sf.MayDuration("WINDOW", time.Minute),
		Supersede: sf.MayBool("SUPERSEDE", false),
	}
}
