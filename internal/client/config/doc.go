// Package config loads runtime configuration for the QuoteDesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv), optionally seeded from a dotenv
//     file given with -e or -env, or from ./.env when present.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the QuoteDesk API
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-d string   path of the local session database
//	-l string   log level
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be either strings like "3s" or
// integer nanoseconds. Absent keys leave the previous value untouched:
//
//	{
//	  "api_base_url": "https://crm.example.com/api",
//	  "request_timeout": "10s",
//	  "online_check_interval": "5s",
//	  "session_db_path": "session.db",
//	  "log_level": "info"
//	}
//
// # Environment
//
//	QUOTEDESK_API_URL, QUOTEDESK_REQUEST_TIMEOUT, QUOTEDESK_ONLINE_CHECK_INTERVAL,
//	QUOTEDESK_SESSION_DB, QUOTEDESK_LOG_LEVEL
package config
