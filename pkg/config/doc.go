// Package config loads configuration from environment variables into tagged
// structs using github.com/caarlos0/env, with optional .env files read by
// github.com/joho/godotenv.
//
// Two entry points cover the two lifetimes of settings:
//
//   - Load parses once per type and caches the result. Use it for process
//     settings such as listen address, timeouts or signing keys.
//   - Read parses on every call. Use it for settings that are expected to be
//     resolved at the time of use, such as mail credentials read per request.
//
// The default .env file in the working directory is loaded once, on first use
// of either function; a missing file is not an error.
//
//	type MailConfig struct {
//	    SenderEmail string `env:"MAIL_SENDER_EMAIL"`
//	    SMTPPort    string `env:"MAIL_SMTP_PORT"`
//	}
//
//	cfg, err := config.Read[MailConfig]()
//
// ResetCache clears cached values, which is mostly useful in tests.
package config
