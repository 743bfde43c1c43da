package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	LockLocal = "local"
	LockRedis = "redis"
)

type Config struct {
	Server struct {
		Host         string        `yaml:"host"`
		Port         int           `yaml:"port"`
		Env          string        `yaml:"env"`
		Debug        bool          `yaml:"debug"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"server"`

	Store struct {
		Driver string `yaml:"driver"` // mongo, postgres, memory
		Mongo  struct {
			URI            string        `yaml:"uri"`
			Database       string        `yaml:"database"`
			ConnectTimeout time.Duration `yaml:"connect_timeout"`
		} `yaml:"mongo"`
		Postgres struct {
			DSN string `yaml:"dsn"`
		} `yaml:"postgres"`
	} `yaml:"store"`

	Email struct {
		Enabled      bool          `yaml:"enabled"`
		SMTPHost     string        `yaml:"smtp_host"`
		SMTPPort     int           `yaml:"smtp_port"`
		SMTPUsername string        `yaml:"smtp_user"`
		SMTPPassword string        `yaml:"smtp_password"`
		FromEmail    string        `yaml:"from_email"`
		FromName     string        `yaml:"from_name"`
		UseSSL       bool          `yaml:"use_ssl"`
		SendTimeout  time.Duration `yaml:"send_timeout"`
	} `yaml:"email"`

	Auth struct {
		BcryptCost          int           `yaml:"bcrypt_cost"`
		JWTSecret           string        `yaml:"jwt_secret"`
		JWTIssuer           string        `yaml:"jwt_issuer"`
		TokenTTL            time.Duration `yaml:"token_ttl"`
		AllowLegacyUniqueID bool          `yaml:"allow_legacy_unique_id"`
		OpenAdminSignup     bool          `yaml:"open_admin_signup"`
	} `yaml:"auth"`

	OTP struct {
		CleanupSchedule     string        `yaml:"cleanup_schedule"`
		UnverifiedRetention time.Duration `yaml:"unverified_retention"`
	} `yaml:"otp"`

	Lock struct {
		Driver        string        `yaml:"driver"` // local, redis
		RedisAddr     string        `yaml:"redis_addr"`
		RedisPassword string        `yaml:"redis_password"`
		RedisDB       int           `yaml:"redis_db"`
		TTL           time.Duration `yaml:"ttl"`
	} `yaml:"lock"`

	Google struct {
		ClientID string `yaml:"client_id"`
	} `yaml:"google"`

	Files struct {
		Type         string `yaml:"type"` // local, s3, cloudflare_r2
		BasePath     string `yaml:"base_path"`
		BaseURL      string `yaml:"base_url"`
		Bucket       string `yaml:"bucket"`
		Region       string `yaml:"region"`
		AccessKey    string `yaml:"access_key"`
		SecretKey    string `yaml:"secret_key"`
		Endpoint     string `yaml:"endpoint"`
		PublicRead   bool   `yaml:"public_read"`
		MaxSize      int64  `yaml:"max_size"`
		ImageQuality int    `yaml:"image_quality"`
	} `yaml:"files"`

	TopAdmin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"top_admin"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

var AppConfig *Config

// LoadConfig reads .env, the optional YAML file at CONFIG_PATH and then
// environment overrides. It exits the process on an invalid result.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to read .env: %v", err)
	}

	cfg := Default()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	if err := cfg.loadFile(configPath); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration that runs locally against MongoDB on the
// default port with a mocked mailer.
func Default() *Config {
	var cfg Config

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 3001
	cfg.Server.Env = "development"
	cfg.Server.ReadTimeout = 15 * time.Second
	cfg.Server.WriteTimeout = 30 * time.Second

	cfg.Store.Driver = StoreMongo
	cfg.Store.Mongo.URI = "mongodb://localhost:27017"
	cfg.Store.Mongo.Database = "cars2customer"
	cfg.Store.Mongo.ConnectTimeout = 10 * time.Second

	cfg.Email.SMTPHost = "smtp.gmail.com"
	cfg.Email.SMTPPort = 465
	cfg.Email.UseSSL = true
	cfg.Email.FromName = "cars2customer"
	cfg.Email.SendTimeout = 15 * time.Second

	cfg.Auth.BcryptCost = 10
	cfg.Auth.JWTIssuer = "cars2customer"
	cfg.Auth.TokenTTL = 2 * time.Hour
	cfg.Auth.AllowLegacyUniqueID = true
	cfg.Auth.OpenAdminSignup = true

	cfg.OTP.CleanupSchedule = "@every 10m"
	cfg.OTP.UnverifiedRetention = 24 * time.Hour

	cfg.Lock.Driver = LockLocal
	cfg.Lock.TTL = 30 * time.Second

	cfg.Files.Type = "local"
	cfg.Files.BasePath = "./uploads"
	cfg.Files.BaseURL = "/files"
	cfg.Files.MaxSize = 10 * 1024 * 1024
	cfg.Files.ImageQuality = 85

	cfg.CORS.AllowedOrigins = []string{"*"}

	return &cfg
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	setString(&c.Server.Env, "SERVER_ENV")
	setInt(&c.Server.Port, "PORT")
	setString(&c.Store.Driver, "STORE_DRIVER")
	setString(&c.Store.Mongo.URI, "MONGO_URI")
	setString(&c.Store.Mongo.Database, "MONGO_DB")
	setString(&c.Store.Postgres.DSN, "DATABASE_URL")
	setString(&c.Email.SMTPHost, "SMTP_HOST")
	setInt(&c.Email.SMTPPort, "SMTP_PORT")
	setString(&c.Email.SMTPUsername, "EMAIL_USER")
	setString(&c.Email.SMTPPassword, "EMAIL_PASS")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Google.ClientID, "GOOGLE_CLIENT_ID")
	setString(&c.Lock.RedisAddr, "REDIS_ADDR")
	setString(&c.TopAdmin.Email, "TOP_ADMIN_EMAIL")
	setString(&c.TopAdmin.Password, "TOP_ADMIN_PASSWORD")

	if c.Email.SMTPUsername != "" && c.Email.SMTPPassword != "" && os.Getenv("EMAIL_ENABLED") != "false" {
		c.Email.Enabled = true
	}
	if c.Email.FromEmail == "" {
		c.Email.FromEmail = c.Email.SMTPUsername
	}
	if c.Lock.RedisAddr != "" && os.Getenv("LOCK_DRIVER") == "" {
		c.Lock.Driver = LockRedis
	}
	setString(&c.Lock.Driver, "LOCK_DRIVER")
}

func (c *Config) Validate() error {
	var problems []string

	switch c.Store.Driver {
	case StoreMongo:
		if c.Store.Mongo.URI == "" {
			problems = append(problems, "store.mongo.uri is required")
		}
	case StorePostgres:
		if c.Store.Postgres.DSN == "" {
			problems = append(problems, "store.postgres.dsn is required")
		}
	case StoreMemory:
	default:
		problems = append(problems, fmt.Sprintf("unsupported store.driver %q", c.Store.Driver))
	}

	switch c.Lock.Driver {
	case LockLocal:
	case LockRedis:
		if c.Lock.RedisAddr == "" {
			problems = append(problems, "lock.redis_addr is required for the redis lock")
		}
		// the OTP mail is sent while the email lock is held
		if c.Lock.TTL <= c.Email.SendTimeout {
			problems = append(problems, fmt.Sprintf("lock.ttl (%s) must be longer than email.send_timeout (%s)", c.Lock.TTL, c.Email.SendTimeout))
		}
	default:
		problems = append(problems, fmt.Sprintf("unsupported lock.driver %q", c.Lock.Driver))
	}

	if c.Email.Enabled && c.Email.FromEmail == "" {
		problems = append(problems, "email.from_email is required when email is enabled")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		problems = append(problems, "auth.bcrypt_cost must be between 4 and 31")
	}
	if c.Server.Env == "production" && c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required in production")
	}

	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, "; "))
	}
	return nil
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Ignoring %s=%q: not an integer", key, v)
		return
	}
	*dst = n
}
