package config

import (
	"os"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gopkg.in/yaml.v3"
)

func Init(filepath string) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		panic(err)
	}

	var conf ServiceConf
	if err := yaml.Unmarshal(content, &conf); err != nil {
		panic(err)
	}
	globalConfig = conf

	hlog.Debugf("config debug: %+v", globalConfig)
}

func GetServerConf() ServerConf {
	return globalConfig.Server
}

func GetDBConf() DBConf {
	return globalConfig.DB
}

func GetRedisConf() RedisConf {
	return globalConfig.Redis
}

func GetJWTConfig() JWTConf {
	return globalConfig.JWT
}

func GetAuthConf() AuthConf {
	return globalConfig.Auth
}

func GetCORSConf() CORSConf {
	return globalConfig.CORS
}

func GetSessionConf() SessionConf {
	return globalConfig.Session
}

func GetRateLimitConf() []RateLimitConf {
	return globalConfig.RateLimit
}

// GetRateLimitDefaultConf is the rule for paths without their own entry.
// Its path is ignored.
func GetRateLimitDefaultConf() RateLimitConf {
	return globalConfig.RateLimitDefault
}

func GetLoggerConf() LoggerConf {
	return globalConfig.Logger
}

func GetLoginProtectionConf() LoginProtectionConf {
	return globalConfig.LoginProtection
}

func GetRegisterProtectionConf() RegisterProtectionConf {
	return globalConfig.RegisterProtection
}

func GetMetricsConf() MetricsConf {
	return globalConfig.Metrics
}

var globalConfig ServiceConf

type ServiceConf struct {
	Server             ServerConf             `yaml:"server"`
	DB                 DBConf                 `yaml:"db"`
	Redis              RedisConf              `yaml:"redis"`
	JWT                JWTConf                `yaml:"jwt"`
	Auth               AuthConf               `yaml:"auth"`
	CORS               CORSConf               `yaml:"cors"`
	Session            SessionConf            `yaml:"session"`
	RateLimit          []RateLimitConf        `yaml:"rate_limit"`
	RateLimitDefault   RateLimitConf          `yaml:"rate_limit_default"`
	Logger             LoggerConf             `yaml:"logger"`
	LoginProtection    LoginProtectionConf    `yaml:"login_protection"`
	RegisterProtection RegisterProtectionConf `yaml:"register_protection"`
	Metrics            MetricsConf            `yaml:"metrics"`
}

type ServerConf struct {
	Addr string `yaml:"addr"`
}

type LoginProtectionConf struct {
	WindowSeconds     int `yaml:"window_seconds"`
	Limit             int `yaml:"limit"`
	BlockMinDuration  int `yaml:"block_min_duration"`
	BlockHourDuration int `yaml:"block_hour_duration"`
	LevelDuration     int `yaml:"level_duration"`
}

type RegisterProtectionConf struct {
	BlockMinutes int `yaml:"block_minutes"`
}

// DBConf selects the gorm dialector. Driver is one of mysql, postgres or sqlite.
// For sqlite, DBName is the file path (or a memory DSN).
type DBConf struct {
	Driver   string `yaml:"driver"`
	DBName   string `yaml:"db_name"`
	IP       string `yaml:"ip"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
}

type RedisConf struct {
	IP       string `yaml:"ip"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConf struct {
	Issuer string `yaml:"issuer"`

	AccessTokenSecret  string `yaml:"access_token_secret"`
	RefreshTokenSecret string `yaml:"refresh_token_secret"`

	AccessExpiration  int `yaml:"access_expiration"`
	RefreshExpiration int `yaml:"refresh_expiration"`
}

// AuthConf picks where the authenticator looks for a token.
// TokenSource is one of cookie, header or session.
type AuthConf struct {
	TokenSource  string `yaml:"token_source"`
	CookieName   string `yaml:"cookie_name"`
	HeaderScheme string `yaml:"header_scheme"`
}

type CORSConf struct {
	AllowOrigins     []string `yaml:"allow_origins"`
	AllowMethods     []string `yaml:"allow_methods"`
	AllowHeaders     []string `yaml:"allow_headers"`
	ExposeHeaders    []string `yaml:"expose_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAge           int      `yaml:"max_age"`
}

type SessionConf struct {
	StorePrefix string `yaml:"store_prefix"`
	Name        string `yaml:"name"`
	Path        string `yaml:"path"`
	Domain      string `yaml:"domain"`
	MaxAge      int    `yaml:"max_age"`
	Secure      bool   `yaml:"secure"`
	HTTPOnly    bool   `yaml:"http_only"`
	SameSite    string `yaml:"same_site"`
}

// RateLimitConf limits one route. Path is the route as registered, so
// "/api/v1/users/:id" covers every user id.
type RateLimitConf struct {
	Path          string `yaml:"path"`
	WindowSeconds int    `yaml:"window_seconds"`
	Limit         int64  `yaml:"limit"`
	HasSession    bool   `yaml:"has_session"`
}

type LoggerConf struct {
	Level      string `yaml:"level"`
	Dir        string `yaml:"dir"`
	FileName   string `yaml:"file_name"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Stdout     bool   `yaml:"stdout"`
}

type MetricsConf struct {
	Enable bool   `yaml:"enable"`
	Addr   string `yaml:"addr"`
	Path   string `yaml:"path"`
}
