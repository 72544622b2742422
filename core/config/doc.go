// Package config provides configuration management for the payout tool.
//
// It uses Viper to merge defaults declared in struct tags with environment variables,
// after overloading an optional .env file with godotenv. Nested keys map to upper-case
// variables with underscores, e.g. payouts.output_dir is PAYOUTS_OUTPUT_DIR.
//
// # Configuration Structure
//
//   - Payouts: mapping workbook, output directory, unmatched report name, sources
//   - Leaderboard: API base URL, timeout, user agent
//   - Server: HTTP port and API key for the start command
//   - Storage: optional S3/MinIO report archival
//   - Database: optional MySQL/SQLite run history
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	sources, _ := cfg.Payouts.ParseSources()
package config
