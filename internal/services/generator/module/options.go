package module

import (
	"time"

	"cardsmith/internal/platform/config"
)

// Options holds configuration settings for the generator module
type Options struct {
	MaxCount      int
	ChunkSize     int
	LookupURL     string
	LookupTimeout time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	gf := cfg.Prefix("CORE_GEN_")
	return Options{
		MaxCount:      gf.MayInt("MAX_COUNT", 50_000),
		ChunkSize:     gf.MayInt("CHUNK_SIZE", 5_000),
		LookupURL:     gf.MayString("LOOKUP_URL", ""),
		LookupTimeout: gf.MayDuration("LOOKUP_TIMEOUT", 5*time.Second),
	}
}
