package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		PublicURL      string   `yaml:"publicURL"`
		ResultPath     string   `yaml:"resultPath"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver"` // mysql | postgres
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`

	Redis struct {
		Addr           string `yaml:"addr"`
		Password       string `yaml:"password"`
		DB             int    `yaml:"db"`
		EvalTTLMinutes int    `yaml:"evalTTLMinutes"`
	} `yaml:"redis"`

	OpenAI struct {
		APIKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"openai"`

	Mail struct {
		APIKey    string   `yaml:"apiKey"`
		FromEmail string   `yaml:"fromEmail"`
		FromName  string   `yaml:"fromName"`
		SalesList []string `yaml:"salesList"`
	} `yaml:"mail"`

	Admin struct {
		Password      string `yaml:"password"`
		JWTSecret     string `yaml:"jwtSecret"`
		TokenTTLHours int    `yaml:"tokenTTLHours"`
	} `yaml:"admin"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	RateLimit struct {
		Capacity   int `yaml:"capacity"`
		RefillRate int `yaml:"refillRate"`
	} `yaml:"ratelimit"`
}

// Load reads the yaml file, then lets environment variables override the
// secrets so they never have to live in the file. The result is the single
// configuration struct injected everywhere; nothing reads os.Getenv later.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideString(&cfg.Database.Password, "DB_PASSWORD")
	overrideString(&cfg.Redis.Password, "REDIS_PASSWORD")
	overrideString(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	overrideString(&cfg.Mail.APIKey, "SENDGRID_API_KEY")
	overrideString(&cfg.Admin.Password, "ADMIN_PASSWORD")
	overrideString(&cfg.Admin.JWTSecret, "JWT_SECRET")
	overrideString(&cfg.Minio.AccessKey, "MINIO_ACCESS_KEY")
	overrideString(&cfg.Minio.SecretKey, "MINIO_SECRET_KEY")

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "mysql"
	}
	if cfg.Server.ResultPath == "" {
		cfg.Server.ResultPath = "/results"
	}
	if cfg.Redis.EvalTTLMinutes <= 0 {
		cfg.Redis.EvalTTLMinutes = 60
	}
	if cfg.Admin.TokenTTLHours <= 0 {
		cfg.Admin.TokenTTLHours = 12
	}
	if cfg.Admin.JWTSecret == "" {
		return nil, fmt.Errorf("admin.jwtSecret (or JWT_SECRET) is required")
	}
	if cfg.Admin.Password == "" {
		return nil, fmt.Errorf("admin.password (or ADMIN_PASSWORD) is required")
	}
	return &cfg, nil
}

func overrideString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// MySQLDSN builds the DSN for the mysql driver
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds the DSN for lib/pq
func (c *Config) PostgresDSN() string {
	ssl := c.Database.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		ssl,
	)
}
