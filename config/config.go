package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host string
	Port int
}

type DB struct {
	Driver string // sqlite or mysql
	Path   string // sqlite file path
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
}

type Session struct {
	Store     string // memory or redis
	RedisAddr string
	RedisDB   int
	TTLMin    int
}

type Templates struct {
	Dir   string
	Watch bool
}

type Admin struct {
	Username string
	Password string
}

type Config struct {
	HTTP      HTTP
	DB        DB
	Session   Session
	Templates Templates
	Admin     Admin
	LogLevel  string
	JWT       struct {
		Secret string
		Issuer string
		ExpMin int
	}
}

// Load reads the YAML file at path and applies KB_* environment
// overrides (KB_JWT_SECRET, KB_ADMIN_PASSWORD, KB_DB_PASS, ...). A
// missing file is not an error so the app can run from env alone.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("KB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("http.host", "127.0.0.1")
	v.SetDefault("http.port", 9500)
	v.SetDefault("log_level", "info")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "knowledge_base.db")
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.name", "knowledge_base")
	v.SetDefault("session.store", "memory")
	v.SetDefault("session.redis_addr", "127.0.0.1:6379")
	v.SetDefault("session.redis_db", 0)
	v.SetDefault("session.ttl_min", 720)
	v.SetDefault("templates.dir", "templates")
	v.SetDefault("templates.watch", false)
	v.SetDefault("admin.username", "admin")
	v.SetDefault("jwt.issuer", "kbase")
	v.SetDefault("jwt.exp_min", 5)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		HTTP: HTTP{Host: v.GetString("http.host"), Port: v.GetInt("http.port")},
		DB: DB{
			Driver: v.GetString("db.driver"),
			Path:   v.GetString("db.path"),
			Host:   v.GetString("db.host"),
			Port:   v.GetInt("db.port"),
			User:   v.GetString("db.user"),
			Pass:   v.GetString("db.pass"),
			Name:   v.GetString("db.name"),
		},
		Session: Session{
			Store:     v.GetString("session.store"),
			RedisAddr: v.GetString("session.redis_addr"),
			RedisDB:   v.GetInt("session.redis_db"),
			TTLMin:    v.GetInt("session.ttl_min"),
		},
		Templates: Templates{Dir: v.GetString("templates.dir"), Watch: v.GetBool("templates.watch")},
		Admin:     Admin{Username: v.GetString("admin.username"), Password: v.GetString("admin.password")},
		LogLevel:  v.GetString("log_level"),
	}
	cfg.JWT.Secret = v.GetString("jwt.secret")
	cfg.JWT.Issuer = v.GetString("jwt.issuer")
	cfg.JWT.ExpMin = v.GetInt("jwt.exp_min")
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 5
	}
	if cfg.DB.Driver != "sqlite" && cfg.DB.Driver != "mysql" {
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}
	if cfg.Session.Store != "memory" && cfg.Session.Store != "redis" {
		return nil, fmt.Errorf("unsupported session store %q", cfg.Session.Store)
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required (jwt.secret or KB_JWT_SECRET)")
	}
	return cfg, nil
}
