// internal/workers/drafting/draft-reply/config.go
package draftreply

import (
	"time"

	"cna-backend/internal/common/config"
	"cna-backend/internal/models"
)

type Config struct {
	DefaultMode models.DraftingMode
	CacheTTL    time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	mode, _ := models.ParseDraftingMode(cfg.Drafting.DefaultMode)
	return &Config{
		DefaultMode: mode,
		CacheTTL:    cfg.Cache.TTL(),
	}
}
