package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/health-wallet/go-wallet-backend/config"
	httpapi "github.com/health-wallet/go-wallet-backend/internal/api/http"
	apimiddleware "github.com/health-wallet/go-wallet-backend/internal/api/http/middleware"
	authhttp "github.com/health-wallet/go-wallet-backend/internal/auth/http"
	authmw "github.com/health-wallet/go-wallet-backend/internal/auth/middleware"
	authrepo "github.com/health-wallet/go-wallet-backend/internal/auth/repository"
	authservice "github.com/health-wallet/go-wallet-backend/internal/auth/service"
	reportshttp "github.com/health-wallet/go-wallet-backend/internal/reports/http"
	reportsrepo "github.com/health-wallet/go-wallet-backend/internal/reports/repository"
	reportsservice "github.com/health-wallet/go-wallet-backend/internal/reports/service"
	sharinghttp "github.com/health-wallet/go-wallet-backend/internal/sharing/http"
	sharingrepo "github.com/health-wallet/go-wallet-backend/internal/sharing/repository"
	sharingservice "github.com/health-wallet/go-wallet-backend/internal/sharing/service"
	"github.com/health-wallet/go-wallet-backend/internal/storage/files"
	vitalscache "github.com/health-wallet/go-wallet-backend/internal/vitals/cache"
	vitalshttp "github.com/health-wallet/go-wallet-backend/internal/vitals/http"
	vitalsrepo "github.com/health-wallet/go-wallet-backend/internal/vitals/repository"
	vitalsservice "github.com/health-wallet/go-wallet-backend/internal/vitals/service"
)

type RouterDeps struct {
	Config    *config.Config
	DB        *sql.DB
	Redis     *redis.Client // nil when disabled
	FileStore files.Store
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(apimiddleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{dep.Config.Server.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
	}))

	healthHandler := httpapi.NewHealthHandler("health-wallet-api", dep.Config.App.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	secret := []byte(dep.Config.Auth.JWTSecret)

	userRepo := authrepo.NewUserRepository(dep.DB)
	authSvc := authservice.NewAuthService(userRepo, secret, dep.Config.Auth.TokenTTL, dep.Config.Auth.BcryptCost)

	reportRepo := reportsrepo.NewReportRepository(dep.DB)
	reportSvc := reportsservice.NewReportService(reportRepo, dep.FileStore)

	var latestCache vitalsservice.LatestCache
	if dep.Redis != nil {
		latestCache = vitalscache.NewLatestCache(dep.Redis, dep.Config.Redis.TTL)
	}
	vitalRepo := vitalsrepo.NewVitalRepository(dep.DB)
	vitalSvc := vitalsservice.NewVitalService(vitalRepo, latestCache)

	grantRepo := sharingrepo.NewGrantRepository(dep.DB)
	shareSvc := sharingservice.NewShareService(grantRepo)

	authRequired := authmw.JWTAuthMiddleware(secret)

	// Credential endpoints are rate limited per IP; everything else sits
	// behind the JWT middleware.
	public := r.Group("/api/auth")
	public.Use(authmw.RateLimitMiddleware(rate.Limit(1), 5))
	protected := r.Group("/api/auth")
	protected.Use(authRequired)
	authhttp.New(authSvc).Register(public, protected)

	reports := r.Group("/api/reports")
	reports.Use(authRequired)
	reportshttp.New(reportSvc).Register(reports)

	vitals := r.Group("/api/vitals")
	vitals.Use(authRequired)
	vitalshttp.New(vitalSvc).Register(vitals)

	share := r.Group("/api/share")
	share.Use(authRequired)
	sharinghttp.New(shareSvc).Register(share)

	return r
}
