package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   gateway/mailer credentials) and security settings
// - default: Values common across all environments (timeouts, CORS, manual
//   payment rails shown to customers)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Order    OrderConfig
	Paystack PaystackConfig
	Mailer   MailerConfig
	Manual   ManualPaymentConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// AdminConfig bootstraps the single reviewer account at startup.
type AdminConfig struct {
	Email    string `envconfig:"ADMIN_EMAIL" required:"true"`
	Password string `envconfig:"ADMIN_PASSWORD" required:"true"`
}

// OrderConfig carries the order form policy. Field requiredness is
// configuration, not a hardcoded rule of the order state machine.
type OrderConfig struct {
	PhoneRequired bool `envconfig:"ORDER_PHONE_REQUIRED" default:"true"`
}

type PaystackConfig struct {
	BaseURL     string        `envconfig:"PAYSTACK_BASE_URL" default:"https://api.paystack.co"`
	SecretKey   string        `envconfig:"PAYSTACK_SECRET_KEY" required:"true"`
	PublicKey   string        `envconfig:"PAYSTACK_PUBLIC_KEY" required:"true"`
	CallbackURL string        `envconfig:"PAYSTACK_CALLBACK_URL" default:""`
	Timeout     time.Duration `envconfig:"PAYSTACK_TIMEOUT" default:"15s"`
}

type MailerConfig struct {
	BaseURL    string        `envconfig:"EMAILJS_BASE_URL" default:"https://api.emailjs.com"`
	ServiceID  string        `envconfig:"EMAILJS_SERVICE_ID" required:"true"`
	TemplateID string        `envconfig:"EMAILJS_TEMPLATE_ID" required:"true"`
	PublicKey  string        `envconfig:"EMAILJS_PUBLIC_KEY" required:"true"`
	PrivateKey string        `envconfig:"EMAILJS_PRIVATE_KEY" default:""`
	Timeout    time.Duration `envconfig:"EMAILJS_TIMEOUT" default:"15s"`
}

// ManualPaymentConfig holds the out-of-band payment rails surfaced to
// customers who choose manual payment.
type ManualPaymentConfig struct {
	BTCAddress      string `envconfig:"MANUAL_BTC_ADDRESS" default:""`
	USDTAddress     string `envconfig:"MANUAL_USDT_ADDRESS" default:""`
	USDTNetwork     string `envconfig:"MANUAL_USDT_NETWORK" default:"TRC20"`
	BankName        string `envconfig:"MANUAL_BANK_NAME" default:""`
	BankAccountName string `envconfig:"MANUAL_BANK_ACCOUNT_NAME" default:""`
	BankAccountNo   string `envconfig:"MANUAL_BANK_ACCOUNT_NO" default:""`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Admin: AdminConfig{
			Email:    "admin@example.com",
			Password: "test-password",
		},
		Order: OrderConfig{
			PhoneRequired: true,
		},
		Paystack: PaystackConfig{
			BaseURL:   "http://localhost:18080",
			SecretKey: "sk_test_secret",
			PublicKey: "pk_test_public",
			Timeout:   5 * time.Second,
		},
		Mailer: MailerConfig{
			BaseURL:    "http://localhost:18081",
			ServiceID:  "service_test",
			TemplateID: "template_test",
			PublicKey:  "public_test",
			Timeout:    5 * time.Second,
		},
		Manual: ManualPaymentConfig{
			BTCAddress:      "3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy",
			USDTAddress:     "TKrJ32UvbUxpwuTdLQcEjw9cLxcCQgEZL2",
			USDTNetwork:     "TRC20",
			BankName:        "First Bank",
			BankAccountName: "Test Account",
			BankAccountNo:   "0123456789",
		},
	}
}
