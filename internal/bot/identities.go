package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Identity is one profile from the bot pool.
type Identity struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarIndex int    `json:"avatar_index"`
}

var (
	identities     []Identity
	idSet          map[string]bool
	displayNameMap map[string]string
	loadOnce       sync.Once
	loadErr        error
)

// LoadIdentities loads the bot profiles from the given path. Missing or
// malformed files leave the generated fallback identities in effect.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}

		var loaded []Identity
		if err := json.Unmarshal(data, &loaded); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}

		idSet = make(map[string]bool, len(loaded))
		displayNameMap = make(map[string]string, len(loaded))
		for _, identity := range loaded {
			if identity.UserID == "" {
				continue
			}
			identities = append(identities, identity)
			idSet[identity.UserID] = true
			displayNameMap[identity.UserID] = identity.DisplayName
		}
	})
	return loadErr
}

// GetIdentity returns an identity for a bot by index (mod pool size), with a
// generated fallback when no pool was loaded.
func GetIdentity(index int) Identity {
	if len(identities) == 0 {
		return Identity{
			UserID:      fmt.Sprintf("bot-%d", index),
			Username:    fmt.Sprintf("bot_%d", index),
			DisplayName: fmt.Sprintf("AI Player %d", index),
		}
	}
	return identities[index%len(identities)]
}

// GetDisplayName returns the display name for a bot ID, or empty if unknown.
func GetDisplayName(userID string) string {
	if displayNameMap == nil {
		return ""
	}
	return displayNameMap[userID]
}

// IsBot reports whether the given user ID belongs to the bot pool, including
// generated fallback IDs.
func IsBot(userID string) bool {
	if idSet != nil && idSet[userID] {
		return true
	}
	return len(userID) > 4 && userID[:4] == "bot-"
}
