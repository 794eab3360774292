package config

import "sync"

// ResetDotenv lets tests load a fresh .env after changing directory.
func ResetDotenv() {
	defaultEnvReady = sync.Once{}
}
