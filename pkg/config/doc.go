// Package config loads typed configuration from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct tag parsing and
// github.com/joho/godotenv for dotenv files. The default .env file in the
// working directory is read once, if it exists; WithEnvFiles reads more.
// Parsed structs are cached per type and prefix, so adapters and the arctl
// command can call Load freely:
//
//	cfg, err := config.Load[postgres.Config]()
//	if err != nil {
//		return err
//	}
//
// Use ResetCache or the Fresh option in tests after changing the environment.
package config
