package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the application
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Auth    AuthConfig
	Auction AuctionConfig
	Payment PaymentConfig
	Log     LogConfig
}

// ServerConfig holds the HTTP listener configuration
type ServerConfig struct {
	Addr string
}

// DBConfig holds the PostgreSQL connection configuration. When Host is
// empty the application runs against the in-memory store.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// AuthConfig holds the bearer-token verification secret
type AuthConfig struct {
	JWTSecret string
}

// AuctionConfig holds the auction policy knobs. The like threshold and
// minimum increment changed over the product's history, so they are
// configuration rather than constants.
type AuctionConfig struct {
	LikeThreshold int
	MinIncrement  int64
	Window        time.Duration
	SweepInterval time.Duration
}

// PaymentConfig holds the payment gateway endpoint configuration
type PaymentConfig struct {
	GatewayURL string
	SecretKey  string
	ReturnURL  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// Parse reads configuration from command-line flags and SNAPBID_*
// environment variables, flags taking precedence
func Parse() Config {
	pflag.String("server-addr", ":8080", "")

	pflag.String("db-host", "", "")
	pflag.Int("db-port", 5432, "")
	pflag.String("db-user", "", "")
	pflag.String("db-password", "", "")
	pflag.String("db-database", "snapbid", "")
	pflag.String("db-sslmode", "disable", "")

	pflag.String("auth-jwt-secret", "", "")

	pflag.Int("auction-like-threshold", 5, "")
	pflag.Int64("auction-min-increment", 50, "")
	pflag.Duration("auction-window", 7*24*time.Hour, "")
	pflag.Duration("auction-sweep-interval", time.Hour, "")

	pflag.String("payment-gateway-url", "https://a.khalti.com/api/v2", "")
	pflag.String("payment-secret-key", "", "")
	pflag.String("payment-return-url", "", "")

	pflag.String("log-level", "info", "")

	pflag.Parse()
	viper.BindPFlags(pflag.CommandLine)
	viper.AutomaticEnv()
	viper.SetEnvPrefix("SNAPBID")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	return Config{
		Server: ServerConfig{
			Addr: viper.GetString("server-addr"),
		},
		DB: DBConfig{
			Host:     viper.GetString("db-host"),
			Port:     viper.GetInt("db-port"),
			User:     viper.GetString("db-user"),
			Password: viper.GetString("db-password"),
			Database: viper.GetString("db-database"),
			SSLMode:  viper.GetString("db-sslmode"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("auth-jwt-secret"),
		},
		Auction: AuctionConfig{
			LikeThreshold: viper.GetInt("auction-like-threshold"),
			MinIncrement:  viper.GetInt64("auction-min-increment"),
			Window:        viper.GetDuration("auction-window"),
			SweepInterval: viper.GetDuration("auction-sweep-interval"),
		},
		Payment: PaymentConfig{
			GatewayURL: viper.GetString("payment-gateway-url"),
			SecretKey:  viper.GetString("payment-secret-key"),
			ReturnURL:  viper.GetString("payment-return-url"),
		},
		Log: LogConfig{
			Level: viper.GetString("log-level"),
		},
	}
}

// UseMemoryStore reports whether the app should run on the in-memory store
func (c Config) UseMemoryStore() bool {
	return c.DB.Host == ""
}

// DSN returns the PostgreSQL connection string
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}
