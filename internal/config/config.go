package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type BetTier struct {
	ID      string `json:"id"`
	BaseBet int64  `json:"base_bet"`
}

type GameConfig struct {
	DefaultTier string    `json:"default_tier"`
	Tiers       []BetTier `json:"tiers"`
	// ResetDelaySeconds is how long a round result stays on screen before the
	// next hand is dealt automatically.
	ResetDelaySeconds int `json:"reset_delay_seconds"`
	// TurnDurationSeconds bounds the arranging phase; zero disables the
	// deadline entirely.
	TurnDurationSeconds int `json:"turn_duration_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds a lone human waits
	// before a bot takes the empty seat.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or nil if never loaded.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetBaseBet returns the base bet for a given tier ID, or the default if not
// found.
func GetBaseBet(tierID string) int64 {
	if cfg == nil {
		return 100 // Safe default
	}

	target := tierID
	if target == "" {
		target = cfg.DefaultTier
	}

	for _, tier := range cfg.Tiers {
		if tier.ID == target {
			return tier.BaseBet
		}
	}

	for _, tier := range cfg.Tiers {
		if tier.ID == cfg.DefaultTier {
			return tier.BaseBet
		}
	}

	return 100
}

// GetResetDelaySeconds returns the result-to-redeal delay with a safe default.
func GetResetDelaySeconds() int {
	if cfg == nil || cfg.ResetDelaySeconds <= 0 {
		return 5
	}
	return cfg.ResetDelaySeconds
}

// GetTurnDurationSeconds returns the arranging deadline; zero means no limit.
func GetTurnDurationSeconds() int {
	if cfg == nil || cfg.TurnDurationSeconds < 0 {
		return 0
	}
	return cfg.TurnDurationSeconds
}

// GetBotAutoFillDelaySeconds returns the lobby auto-fill delay with a default.
func GetBotAutoFillDelaySeconds() int {
	if cfg == nil || cfg.BotAutoFillDelaySeconds <= 0 {
		return 5
	}
	return cfg.BotAutoFillDelaySeconds
}
