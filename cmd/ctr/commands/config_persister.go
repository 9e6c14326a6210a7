package commands

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

// ConfigPersister caches access tokens in the config file so later runs can
// skip the token exchange. It implements ctr.TokenPersister.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// PersistToken stores the token and its expiry in the config file. Tokens
// without an expiry, such as a cached token being reloaded, are not written.
func (p *ConfigPersister) PersistToken(accessToken string, expiresAt time.Time) error {
	if expiresAt.IsZero() {
		return nil
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	expires := expiresAt.UTC().Format(time.RFC3339)

	err := updateConfigFile(func(values map[string]interface{}) {
		values[keyCachedToken] = accessToken
		values[keyCachedTokenExpiresAt] = expires
	})
	if err != nil {
		return err
	}

	viper.Set(keyCachedToken, accessToken)
	viper.Set(keyCachedTokenExpiresAt, expires)

	return nil
}
