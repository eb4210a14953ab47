package config

import "time"

// JWTExpiration is the lifetime of tokens minted locally by the CLI for
// development. Production tokens come from the auth provider.
const JWTExpiration = 24 * time.Hour

func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}
