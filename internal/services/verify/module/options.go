package module

import (
	"time"

	"cardsmith/internal/platform/config"
)

// Options holds configuration settings for the verify module
type Options struct {
	MaxItems        int
	CheckpointEvery int
	CheckerURL      string
	CheckerTimeout  time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	vf := cfg.Prefix("CORE_VERIFY_")
	return Options{
		MaxItems:        vf.MayInt("MAX_ITEMS", 30),
		CheckpointEvery: vf.MayInt("CHECKPOINT_EVERY", 3),
		CheckerURL:      vf.MayString("CHECKER_URL", ""),
		CheckerTimeout:  vf.MayDuration("CHECKER_TIMEOUT", 15*time.Second),
	}
}
