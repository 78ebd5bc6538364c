package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultRetries = 2

// Config es la configuración completa de eurokeys.
type Config struct {
	History HistoryConfig `yaml:"history"`
	Scraper ScraperConfig `yaml:"scraper"`
	Storage StorageConfig `yaml:"storage"`
	Cache   CacheConfig   `yaml:"cache"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// HistoryConfig controla el histórico de sorteos.
type HistoryConfig struct {
	StartYear      int `yaml:"start_year"`      // primer año a scrapear en la carga inicial
	SimulatedDraws int `yaml:"simulated_draws"` // sorteos a generar si no hay datos reales
}

// ScraperConfig controla el Chrome headless que descarga los resultados.
type ScraperConfig struct {
	BaseURL            string  `yaml:"base_url"`
	ChromePath         string  `yaml:"chrome_path"` // vacío = buscar en el PATH
	PageTimeoutSeconds int     `yaml:"page_timeout_seconds"`
	RequestsPerSecond  float64 `yaml:"requests_per_second"`
	Retries            *int    `yaml:"retries"` // nil = 2; 0 desactiva los reintentos
}

// StorageConfig controla dónde se persisten los sorteos.
type StorageConfig struct {
	Driver     string `yaml:"driver"`    // sqlite | json | s3
	DSN        string `yaml:"dsn"`       // ruta al archivo SQLite, o ":memory:"
	JSONPath   string `yaml:"json_path"` // ruta al cache.json
	S3Bucket   string `yaml:"s3_bucket"`
	S3Key      string `yaml:"s3_key"`
	S3Region   string `yaml:"s3_region"`
	S3Endpoint string `yaml:"s3_endpoint"` // vacío = AWS
}

// CacheConfig controla la cache del dashboard calculado.
type CacheConfig struct {
	Driver        string `yaml:"driver"` // memory | redis
	TTLSeconds    int    `yaml:"ttl_seconds"`
	Size          int    `yaml:"size"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

// ServerConfig controla el servidor HTTP.
type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	WebDir       string `yaml:"web_dir"`
	RefreshHours int    `yaml:"refresh_hours"` // 0 = sin refresco periódico
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Las variables de entorno sobreescriben los valores del YAML.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	setDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default devuelve la configuración por defecto, sin archivo.
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	return &cfg
}

// PageTimeout devuelve el timeout por página del scraper.
func (c *Config) PageTimeout() time.Duration {
	return time.Duration(c.Scraper.PageTimeoutSeconds) * time.Second
}

// ScraperRetries devuelve los reintentos por año del scraper.
func (c *Config) ScraperRetries() int {
	if c.Scraper.Retries == nil {
		return defaultRetries
	}
	return *c.Scraper.Retries
}

// CacheTTL devuelve la vigencia del dashboard cacheado.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// RefreshInterval devuelve el intervalo del refresco periódico (0 = desactivado).
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Server.RefreshHours) * time.Hour
}

// Addr devuelve host:port del servidor HTTP.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("EUROKEYS_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config.Load: EUROKEYS_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("CHROME_PATH"); v != "" {
		cfg.Scraper.ChromePath = v
	}
	if v := os.Getenv("EUROKEYS_S3_BUCKET"); v != "" {
		cfg.Storage.S3Bucket = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Cache.RedisPassword = v
	}
	return nil
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.History.StartYear <= 0 {
		cfg.History.StartYear = 2004
	}
	if cfg.History.SimulatedDraws <= 0 {
		cfg.History.SimulatedDraws = 1868
	}
	if cfg.Scraper.BaseURL == "" {
		cfg.Scraper.BaseURL = "https://www.euro-millions.com"
	}
	if cfg.Scraper.PageTimeoutSeconds <= 0 {
		cfg.Scraper.PageTimeoutSeconds = 15
	}
	if cfg.Scraper.RequestsPerSecond <= 0 {
		cfg.Scraper.RequestsPerSecond = 1
	}
	if cfg.Scraper.Retries == nil || *cfg.Scraper.Retries < 0 {
		retries := defaultRetries
		cfg.Scraper.Retries = &retries
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "sqlite"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "eurokeys.db"
	}
	if cfg.Storage.JSONPath == "" {
		cfg.Storage.JSONPath = "data/cache.json"
	}
	if cfg.Cache.Driver == "" {
		cfg.Cache.Driver = "memory"
	}
	if cfg.Cache.TTLSeconds <= 0 {
		cfg.Cache.TTLSeconds = 60
	}
	if cfg.Cache.Size <= 0 {
		cfg.Cache.Size = 16
	}
	if cfg.Cache.RedisAddr == "" {
		cfg.Cache.RedisAddr = "localhost:6379"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 5001
	}
	if cfg.Server.WebDir == "" {
		cfg.Server.WebDir = "web"
	}
	if cfg.Server.RefreshHours < 0 {
		cfg.Server.RefreshHours = 0
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "sqlite", "json":
	case "s3":
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("config.Load: storage driver s3 requires s3_bucket")
		}
	default:
		return fmt.Errorf("config.Load: unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Cache.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("config.Load: unknown cache driver %q", c.Cache.Driver)
	}
	return nil
}
