package initialize

import (
	"fmt"
	"net/http"
	"time"

	"kbase/app/controllers"
	"kbase/app/db"
	jwtutil "kbase/app/jwt"
	"kbase/app/middleware"
	"kbase/app/models"
	"kbase/app/repo"
	"kbase/app/services"
	"kbase/app/session"
	"kbase/app/view"
	"kbase/config"
	"kbase/global"
	"kbase/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg      *config.Config
	DB       *gorm.DB
	Router   http.Handler
	Users    *services.UserService
	Entries  *services.EntryService
	Sessions session.Store
	View     *view.Renderer
}

func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = *cfg
	SetLogLevel(cfg.LogLevel)

	gdb, err := db.Connect(db.Config{
		Driver: cfg.DB.Driver, Path: cfg.DB.Path,
		Host: cfg.DB.Host, Port: cfg.DB.Port, User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb

	if err := gdb.AutoMigrate(&models.User{}, &models.Entry{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Services
	userRepo := repo.NewUserRepository(gdb)
	entryRepo := repo.NewEntryRepository(gdb)
	userSvc := services.NewUserService(userRepo)
	entrySvc := services.NewEntryService(entryRepo)

	if cfg.Admin.Password != "" {
		if err := userSvc.EnsureAdmin(cfg.Admin.Username, cfg.Admin.Password); err != nil {
			return nil, fmt.Errorf("seed admin: %w", err)
		}
	} else {
		global.Logger.Warn().Msg("no admin password configured, skipping admin seed (set admin.password or KB_ADMIN_PASSWORD)")
	}

	// Sessions
	ttl := time.Duration(cfg.Session.TTLMin) * time.Minute
	var sessions session.Store
	if cfg.Session.Store == "redis" {
		global.Rdb = redis.NewClient(&redis.Options{Addr: cfg.Session.RedisAddr, DB: cfg.Session.RedisDB})
		sessions = session.NewRedisStore(global.Rdb, ttl)
	} else {
		sessions = session.NewMemoryStore(ttl)
	}

	// Controllers
	renderer, err := view.NewRenderer(cfg.Templates.Dir, cfg.Templates.Watch)
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	mw := &middleware.Auth{Signer: signer, Sessions: sessions, Users: userSvc}
	webCtrl := controllers.NewWebController(userSvc, entrySvc, sessions, renderer)
	apiAuthCtrl := controllers.NewAPIAuthController(userSvc, signer)
	apiEntryCtrl := controllers.NewAPIEntryController(entrySvc, userSvc)

	h := router.NewRouter(webCtrl, apiAuthCtrl, apiEntryCtrl, mw)
	h = middleware.Logging(h)

	return &App{Cfg: cfg, DB: gdb, Router: h, Users: userSvc, Entries: entrySvc, Sessions: sessions, View: renderer}, nil
}
