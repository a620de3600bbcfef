package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	RateLimitPeriod   string

	// HMRC Making Tax Digital VAT API. The OAuth token lifecycle lives with
	// HMRC; we only hold the credentials needed to mint access tokens.
	HMRCBaseURL      string
	HMRCTokenURL     string
	HMRCClientID     string
	HMRCClientSecret string
	HMRCRefreshToken string
	HMRCVRN          string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "ledgerline-app")
	viper.SetDefault("RATE_LIMIT_PERIOD", "100-M")
	viper.SetDefault("HMRC_BASE_URL", "https://test-api.service.hmrc.gov.uk")
	viper.SetDefault("HMRC_TOKEN_URL", "https://test-api.service.hmrc.gov.uk/oauth/token")
	viper.SetDefault("HMRC_CLIENT_ID", "")
	viper.SetDefault("HMRC_CLIENT_SECRET", "")
	viper.SetDefault("HMRC_REFRESH_TOKEN", "")
	viper.SetDefault("HMRC_VRN", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.RateLimitPeriod = viper.GetString("RATE_LIMIT_PERIOD")

	cfg.HMRCBaseURL = viper.GetString("HMRC_BASE_URL")
	cfg.HMRCTokenURL = viper.GetString("HMRC_TOKEN_URL")
	cfg.HMRCClientID = viper.GetString("HMRC_CLIENT_ID")
	cfg.HMRCClientSecret = viper.GetString("HMRC_CLIENT_SECRET")
	cfg.HMRCRefreshToken = viper.GetString("HMRC_REFRESH_TOKEN")
	cfg.HMRCVRN = viper.GetString("HMRC_VRN")
	if cfg.HMRCClientID == "" || cfg.HMRCVRN == "" {
		log.Println("Warning: HMRC credentials not fully configured. VAT obligations and submission will not function.")
	}

	return cfg, nil
}
