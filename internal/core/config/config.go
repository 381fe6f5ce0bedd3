package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name    string
	Env     string
	User    HTTP
	Product HTTP
}

type FileRotate struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  FileRotate
}

type Mongo struct {
	URI        string
	Database   string
	TimeoutSec int
}

type SQL struct {
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

// Store 选择持久化后端：mongo / postgres / mysql / memory
type Store struct {
	Driver string
	Mongo  Mongo
	SQL    SQL
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Limits 中间件参数
type Limits struct {
	RateLimitRPS   float64
	RateLimitBurst int

	// 每客户端额度；配置了 redis 时跨副本共享
	ClientRateLimitRPS   float64
	ClientRateLimitBurst int

	MaxConcurrent      int64
	MaxBodyBytes       int64
	RequestTimeoutSec  int
	ShutdownTimeoutSec int
}

type Config struct {
	App   App
	Log   Log
	Store Store
	Redis Redis `mapstructure:"redis"`
	HTTP  Limits
}

const DefaultPath = "./configs/config.local.yaml"

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "ecommerce")
	v.SetDefault("app.env", "local")
	for svc, port := range map[string]int{"user": 8081, "product": 8082} {
		v.SetDefault("app."+svc+".host", "0.0.0.0")
		v.SetDefault("app."+svc+".port", port)
		v.SetDefault("app."+svc+".readTimeoutSec", 5)
		v.SetDefault("app."+svc+".writeTimeoutSec", 10)
		v.SetDefault("app."+svc+".idleTimeoutSec", 60)
	}

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.enable", false)
	v.SetDefault("log.file.filename", "logs/app.log")
	v.SetDefault("log.file.maxSizeMB", 100)
	v.SetDefault("log.file.maxBackups", 7)
	v.SetDefault("log.file.maxAgeDays", 30)
	v.SetDefault("log.file.compress", false)

	v.SetDefault("store.driver", "mongo")
	v.SetDefault("store.mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("store.mongo.database", "ecommerce")
	v.SetDefault("store.mongo.timeoutSec", 10)
	// 无默认值的 key 也要注册，否则 AutomaticEnv 在 Unmarshal 时看不到
	v.SetDefault("store.sql.dsn", "")
	v.SetDefault("store.sql.username", "")
	v.SetDefault("store.sql.password", "")
	v.SetDefault("store.sql.maxOpenConns", 50)
	v.SetDefault("store.sql.maxIdleConns", 10)
	v.SetDefault("store.sql.connMaxLifetimeMin", 30)
	v.SetDefault("store.sql.autoMigrate", true)
	v.SetDefault("store.sql.logLevel", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("http.rateLimitRPS", 200)
	v.SetDefault("http.rateLimitBurst", 400)
	v.SetDefault("http.clientRateLimitRPS", 50)
	v.SetDefault("http.clientRateLimitBurst", 100)
	v.SetDefault("http.maxConcurrent", 300)
	v.SetDefault("http.maxBodyBytes", 1<<20)
	v.SetDefault("http.requestTimeoutSec", 10)
	v.SetDefault("http.shutdownTimeoutSec", 10)
}

// Load 读取 YAML 配置；文件不存在时只用默认值 + 环境变量（APP_STORE_DRIVER 等）
func Load(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = DefaultPath
		}
	}
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	return &c, nil
}
