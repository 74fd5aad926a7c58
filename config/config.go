package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	JwtSecret string `yaml:"jwt_secret" json:"jwt_secret"`
}

// DBConfig describes the optional remote document store. An empty Host
// leaves the service in local-only mode, persisting to the cache file alone.
type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// AssistantConfig points at the text/image generation gateway. The service
// itself is opaque: text in, text out.
type AssistantConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Endpoint string `yaml:"endpoint" json:"endpoint"`
	ApiKey   string `yaml:"api_key" json:"api_key"`
	Model    string `yaml:"model" json:"model"`
}

// StoreLocation is the fixed store coordinate used by the delivery radius
// check. GeoEndpoint is the geolocation provider URL; empty disables it.
type StoreLocation struct {
	Lat         float64 `yaml:"lat" json:"lat"`
	Lng         float64 `yaml:"lng" json:"lng"`
	GeoEndpoint string  `yaml:"geo_endpoint" json:"geo_endpoint"`
}

type AppConfig struct {
	System    SysConfig       `yaml:"system" json:"system"`
	Web       WebConfig       `yaml:"web" json:"web"`
	Database  DBConfig        `yaml:"database" json:"database"`
	Logger    LogConfig       `yaml:"logger" json:"logger"`
	Assistant AssistantConfig `yaml:"assistant" json:"assistant"`
	Location  StoreLocation   `yaml:"location" json:"location"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "botilleria",
		Location: "America/Santiago",
		Workdir:  "/var/botilleria",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1880,
		JwtSecret: "9b6de5cc-0731-4bf1-zpms-0f568ac9da37",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "",
		Port:     5432,
		Name:     "botilleria",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/botilleria/botilleria.log",
	},
	Assistant: AssistantConfig{
		Enabled: false,
		Model:   "gemini-flash",
	},
	// Plaza de Maipú by default; override per deployment.
	Location: StoreLocation{
		Lat: -33.5110,
		Lng: -70.7580,
	},
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "logs"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0755)
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue == "true" || evalue == "1" || evalue == "on")
	}
}

func setEnvIntValue(name string, f func(v int)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(cast.ToInt(evalue))
	}
}

func setEnvFloatValue(name string, f func(v float64)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(cast.ToFloat64(evalue))
	}
}

// LoadConfig reads the YAML configuration file and applies environment
// overrides. A missing file is not an error; defaults apply.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			cfg = new(AppConfig)
			if err := yaml.Unmarshal(data, cfg); err != nil {
				panic(err)
			}
		}
	}

	setEnvValue("BOTILLERIA_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("BOTILLERIA_SYSTEM_LOCATION", func(v string) { cfg.System.Location = v })
	setEnvBoolValue("BOTILLERIA_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })

	setEnvValue("BOTILLERIA_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvIntValue("BOTILLERIA_WEB_PORT", func(v int) { cfg.Web.Port = v })
	setEnvValue("BOTILLERIA_WEB_SECRET", func(v string) { cfg.Web.JwtSecret = v })

	setEnvValue("BOTILLERIA_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("BOTILLERIA_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvIntValue("BOTILLERIA_DB_PORT", func(v int) { cfg.Database.Port = v })
	setEnvValue("BOTILLERIA_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("BOTILLERIA_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("BOTILLERIA_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvBoolValue("BOTILLERIA_DB_DEBUG", func(v bool) { cfg.Database.Debug = v })

	setEnvValue("BOTILLERIA_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvBoolValue("BOTILLERIA_LOGGER_FILE_ENABLE", func(v bool) { cfg.Logger.FileEnable = v })
	setEnvValue("BOTILLERIA_LOGGER_FILENAME", func(v string) { cfg.Logger.Filename = v })

	setEnvBoolValue("BOTILLERIA_ASSISTANT_ENABLED", func(v bool) { cfg.Assistant.Enabled = v })
	setEnvValue("BOTILLERIA_ASSISTANT_ENDPOINT", func(v string) { cfg.Assistant.Endpoint = v })
	setEnvValue("BOTILLERIA_ASSISTANT_APIKEY", func(v string) { cfg.Assistant.ApiKey = v })
	setEnvValue("BOTILLERIA_ASSISTANT_MODEL", func(v string) { cfg.Assistant.Model = v })

	setEnvFloatValue("BOTILLERIA_LOCATION_LAT", func(v float64) { cfg.Location.Lat = v })
	setEnvFloatValue("BOTILLERIA_LOCATION_LNG", func(v float64) { cfg.Location.Lng = v })
	setEnvValue("BOTILLERIA_LOCATION_GEO_ENDPOINT", func(v string) { cfg.Location.GeoEndpoint = v })

	cfg.initDirs()
	return cfg
}
