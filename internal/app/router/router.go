// Package router はHTTPルーティングを定義します。
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	analysishandler "company_intel/internal/feature/analysis/transport/handler"
	historyhandler "company_intel/internal/feature/history/transport/handler"
	"company_intel/internal/platform/env"
	"company_intel/internal/platform/http/handler"
	jwtmw "company_intel/internal/platform/jwt"
)

// Config はルーター全体の設定です。
type Config struct {
	AuthEnabled  bool
	JWTSecret    string
	AllowOrigins []string // 空ならCORSミドルウェアを付けない
}

// LoadConfig reads AUTH_ENABLED, JWT_SECRET and CORS_ALLOW_ORIGINS.
func LoadConfig() Config {
	return Config{
		AuthEnabled:  env.GetBool("AUTH_ENABLED", false),
		JWTSecret:    env.Get(jwtmw.EnvKeyJWTSecret, ""),
		AllowOrigins: env.GetList("CORS_ALLOW_ORIGINS"),
	}
}

func NewRouter(cfg Config, health *handler.HealthHandler, analyze *analysishandler.AnalyzeHandler,
	history *historyhandler.HistoryHandler) *gin.Engine {
	r := gin.Default()

	if len(cfg.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.AllowOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders: []string{"Content-Type"},
			MaxAge:        12 * time.Hour,
		}))
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)

	// AUTH_ENABLED=true のときだけ Bearer トークンを要求する
	api := r.Group("/")
	if cfg.AuthEnabled {
		if cfg.JWTSecret == "" {
			slog.Warn("AUTH_ENABLED is set but JWT_SECRET is empty; every request will be rejected")
		}
		api.Use(jwtmw.AuthRequired(cfg.JWTSecret))
	}
	{
		api.POST("/analyze", analyze.Analyze)
		api.GET("/analyses", history.List)
		api.GET("/analyses/:id", history.Get)
	}

	return r
}
