package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type DatabaseConfig struct {
	Path      string `yaml:"path" validate:"required"`
	BatchSize int    `yaml:"batchSize" validate:"required|min:1|max:450"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CatalogConfig struct {
	APIURL       string        `yaml:"apiUrl" validate:"required"`
	APIKey       string        `yaml:"apiKey"`
	PageSize     int           `yaml:"pageSize" validate:"required|min:1"`
	MaxPages     int           `yaml:"maxPages" validate:"required|min:1"`
	YearsBack    int           `yaml:"yearsBack" validate:"required|min:1"`
	MinPieces    int           `yaml:"minPieces"`
	PricePerUnit float64       `yaml:"pricePerUnit"`
	MinPrice     float64       `yaml:"minPrice"`
	SnapshotPath string        `yaml:"snapshotPath" validate:"required|unixPath"`
	Interval     time.Duration `yaml:"interval" validate:"required|min:1"`
	Timeout      time.Duration `yaml:"timeout" validate:"required|min:1"`
	RunTimeout   time.Duration `yaml:"runTimeout" validate:"required|min:1"`
}

type PricingConfig struct {
	Interval    time.Duration `yaml:"interval" validate:"required|min:1"`
	Timeout     time.Duration `yaml:"timeout" validate:"required|min:1"`
	MaxProducts int           `yaml:"maxProducts" validate:"required|min:1"`
	ManualSlice int           `yaml:"manualSlice" validate:"required|min:1"`
	IterRate    float64       `yaml:"iterRate" validate:"required"`
}

type DealsConfig struct {
	MinDiscount    int           `yaml:"minDiscount" validate:"uint|max:100"`
	HotThreshold   int           `yaml:"hotThreshold" validate:"uint|max:100"`
	Retention      time.Duration `yaml:"retention" validate:"required|min:1"`
	MaxWatchThemes int           `yaml:"maxWatchThemes" validate:"required|min:1"`
	MaxWatchSets   int           `yaml:"maxWatchSets" validate:"required|min:1"`
}

type PushConfig struct {
	GatewayURL string        `yaml:"gatewayUrl" validate:"required"`
	BatchSize  int           `yaml:"batchSize" validate:"required|min:1|max:100"`
	Timeout    time.Duration `yaml:"timeout" validate:"required|min:1"`
}

type SecurityConfig struct {
	AdminKey       string        `yaml:"adminKey"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
	RateLimit      int           `yaml:"rateLimit" validate:"required|min:1"`
	RateWindow     time.Duration `yaml:"rateWindow" validate:"required|min:1"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Version   string
	Debug     bool
	Path      string
	WebServer Server         `yaml:"webServer"`
	Database  DatabaseConfig `yaml:"database"`
	Logger    LoggerConfig   `yaml:"logger"`
	Catalog   CatalogConfig  `yaml:"catalog"`
	Pricing   PricingConfig  `yaml:"pricing"`
	Deals     DealsConfig    `yaml:"deals"`
	Push      PushConfig     `yaml:"push"`
	Security  SecurityConfig `yaml:"security"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}
