// Package config loads environment-driven configuration into tagged structs.
//
// Every package owns its config struct and tags it for
// github.com/caarlos0/env/v11; Load parses it once per type and caches the
// result. A .env file in the working directory is loaded first through
// github.com/joho/godotenv, without overriding variables that are already set.
//
//	var app config.App
//	config.MustLoad(&app)
//
// Structs with a Validate() error method are validated after parsing and
// fail with ErrInvalidConfig.
package config
