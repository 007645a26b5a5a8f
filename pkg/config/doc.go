// Package config loads configuration structs from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11 into a
// small API: an optional .env file is loaded once per process, then the
// environment is parsed into any annotated struct.
//
//	type Config struct {
//	    AccessToken string `env:"BANKPAY_ACCESS_TOKEN,required"`
//	    BaseURL     string `env:"BANKPAY_BASE_URL" envDefault:"https://api.bankpay.dev"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatalf("loading config: %v", err)
//	}
//
// Load is intentionally uncached: a library should not memoize its host
// application's configuration. Call it once at startup and pass the struct
// down.
//
// Errors wrap the sentinel ErrParsingConfig (and ErrNilPointer for nil
// arguments), comparable with errors.Is.
package config
