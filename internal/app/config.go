package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	appdb "github.com/yungbote/contactbook-backend/internal/data/db"
	"github.com/yungbote/contactbook-backend/internal/observability"
	"github.com/yungbote/contactbook-backend/internal/platform/envutil"
)

// Duration accepts "5s"-style strings or integer nanoseconds in YAML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	s := strings.TrimSpace(value.Value)
	if s == "" {
		d.Duration = 0
		return nil
	}
	if dd, err := time.ParseDuration(s); err == nil {
		d.Duration = dd
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("duration must be a string like \"5s\" or integer nanoseconds: %q", s)
	}
	d.Duration = time.Duration(n)
	return nil
}

type HTTPConfig struct {
	Addr              string   `yaml:"addr"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout"`
	IdleTimeout       Duration `yaml:"idle_timeout"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout"`
	MaxRequestBytes   int64    `yaml:"max_request_bytes"`
}

type DBConfig struct {
	Driver          string   `yaml:"driver"`
	DSN             string   `yaml:"dsn"`
	Host            string   `yaml:"host"`
	Port            int      `yaml:"port"`
	User            string   `yaml:"user"`
	Password        string   `yaml:"password"`
	Name            string   `yaml:"name"`
	SSLMode         string   `yaml:"sslmode"`
	MaxOpenConns    int      `yaml:"max_open_conns"`
	MaxIdleConns    int      `yaml:"max_idle_conns"`
	ConnMaxLifetime Duration `yaml:"conn_max_lifetime"`
	SlowThreshold   Duration `yaml:"slow_threshold"`
}

type AuthConfig struct {
	BcryptCost  int    `yaml:"bcrypt_cost"`
	TokenHeader string `yaml:"token_header"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

type ObservabilityConfig struct {
	OTelEnabled  bool    `yaml:"otel_enabled"`
	ServiceName  string  `yaml:"service_name"`
	Version      string  `yaml:"version"`
	OTLPEndpoint string  `yaml:"otlp_endpoint"`
	OTLPInsecure bool    `yaml:"otlp_insecure"`
	SampleRatio  float64 `yaml:"sample_ratio"`
	// OTLPHeaders uses the "k=v,k2=v2" form of OTEL_EXPORTER_OTLP_HEADERS.
	OTLPHeaders    string `yaml:"otlp_headers"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
}

type Config struct {
	Env           string              `yaml:"env"`
	HTTP          HTTPConfig          `yaml:"http"`
	DB            DBConfig            `yaml:"db"`
	Auth          AuthConfig          `yaml:"auth"`
	CORS          CORSConfig          `yaml:"cors"`
	Observability ObservabilityConfig `yaml:"observability"`
}

func defaultConfig() Config {
	return Config{
		Env: "development",
		HTTP: HTTPConfig{
			Addr:              ":3000",
			ReadHeaderTimeout: Duration{Duration: 5 * time.Second},
			IdleTimeout:       Duration{Duration: 2 * time.Minute},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
			MaxRequestBytes:   1 << 20,
		},
		DB: DBConfig{
			Driver:          appdb.DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Name:            "contactbook",
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: Duration{Duration: 30 * time.Minute},
			SlowThreshold:   Duration{Duration: time.Second},
		},
		Auth: AuthConfig{
			BcryptCost:  10,
			TokenHeader: "X-API-TOKEN",
		},
		Observability: ObservabilityConfig{
			ServiceName:    "contactbook",
			SampleRatio:    0.1,
			MetricsEnabled: true,
		},
	}
}

// LoadConfig layers defaults, an optional YAML file, then environment
// overrides, and validates the result.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()

	cfgPath := strings.TrimSpace(os.Getenv("CONTACTBOOK_CONFIG_PATH"))
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "config.yaml")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}
	if cfgPath != "" {
		b, err := os.ReadFile(cfgPath)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Env = envutil.String("LOG_MODE", cfg.Env)

	if port := envutil.String("PORT", ""); port != "" {
		cfg.HTTP.Addr = ":" + strings.TrimPrefix(port, ":")
	}
	cfg.HTTP.Addr = envutil.String("HTTP_ADDR", cfg.HTTP.Addr)
	cfg.HTTP.ShutdownTimeout.Duration = envutil.Duration("HTTP_SHUTDOWN_TIMEOUT", cfg.HTTP.ShutdownTimeout.Duration)
	cfg.HTTP.MaxRequestBytes = int64(envutil.Int("HTTP_MAX_REQUEST_BYTES", int(cfg.HTTP.MaxRequestBytes)))

	cfg.DB.Driver = strings.ToLower(envutil.String("DB_DRIVER", cfg.DB.Driver))
	cfg.DB.DSN = envutil.String("DB_DSN", cfg.DB.DSN)
	cfg.DB.Host = envutil.String("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envutil.Int("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = envutil.String("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Password = envutil.String("POSTGRES_PASSWORD", cfg.DB.Password)
	cfg.DB.Name = envutil.String("POSTGRES_NAME", cfg.DB.Name)
	cfg.DB.SSLMode = envutil.String("POSTGRES_SSLMODE", cfg.DB.SSLMode)
	cfg.DB.MaxOpenConns = envutil.Int("DB_MAX_OPEN_CONNS", cfg.DB.MaxOpenConns)
	cfg.DB.MaxIdleConns = envutil.Int("DB_MAX_IDLE_CONNS", cfg.DB.MaxIdleConns)

	cfg.Auth.BcryptCost = envutil.Int("BCRYPT_COST", cfg.Auth.BcryptCost)
	cfg.Auth.TokenHeader = envutil.String("AUTH_TOKEN_HEADER", cfg.Auth.TokenHeader)

	cfg.CORS.AllowOrigins = envutil.List("CORS_ALLOW_ORIGINS", cfg.CORS.AllowOrigins)

	cfg.Observability.OTelEnabled = envutil.Bool("OTEL_ENABLED", cfg.Observability.OTelEnabled)
	cfg.Observability.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Observability.ServiceName)
	cfg.Observability.OTLPEndpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Observability.OTLPEndpoint)
	cfg.Observability.OTLPInsecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Observability.OTLPInsecure)
	cfg.Observability.OTLPHeaders = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", cfg.Observability.OTLPHeaders)
	cfg.Observability.MetricsEnabled = envutil.Bool("METRICS_ENABLED", cfg.Observability.MetricsEnabled)
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		errs = append(errs, errors.New("http.addr is required"))
	}
	switch c.DB.Driver {
	case appdb.DriverPostgres, appdb.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("db.driver must be %q or %q, got %q", appdb.DriverPostgres, appdb.DriverSQLite, c.DB.Driver))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("auth.bcrypt_cost must be within [%d,%d]", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if strings.TrimSpace(c.Auth.TokenHeader) == "" {
		errs = append(errs, errors.New("auth.token_header is required"))
	}
	return errors.Join(errs...)
}

func (c Config) dbConfig() appdb.Config {
	return appdb.Config{
		Driver:          c.DB.Driver,
		DSN:             c.DB.DSN,
		Host:            c.DB.Host,
		Port:            c.DB.Port,
		User:            c.DB.User,
		Password:        c.DB.Password,
		Name:            c.DB.Name,
		SSLMode:         c.DB.SSLMode,
		MaxOpenConns:    c.DB.MaxOpenConns,
		MaxIdleConns:    c.DB.MaxIdleConns,
		ConnMaxLifetime: c.DB.ConnMaxLifetime.Duration,
		SlowThreshold:   c.DB.SlowThreshold.Duration,
	}
}

func (c Config) otelConfig() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.Observability.OTelEnabled,
		ServiceName: c.Observability.ServiceName,
		Environment: c.Env,
		Version:     c.Observability.Version,
		Endpoint:    c.Observability.OTLPEndpoint,
		Insecure:    c.Observability.OTLPInsecure,
		Headers:     observability.ParseHeaders(c.Observability.OTLPHeaders),
		SampleRatio: c.Observability.SampleRatio,
	}
}
