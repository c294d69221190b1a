package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/jobboard/internal/admin/application"
	"github.com/wyfcoding/jobboard/internal/admin/domain"
	"github.com/wyfcoding/jobboard/internal/admin/infrastructure/messaging/kafka"
	"github.com/wyfcoding/jobboard/internal/admin/infrastructure/persistence/mysql"
	http_server "github.com/wyfcoding/jobboard/internal/admin/interfaces/http"
	"github.com/wyfcoding/jobboard/pkg/cache"
	"github.com/wyfcoding/jobboard/pkg/config"
	"github.com/wyfcoding/jobboard/pkg/db"
	"github.com/wyfcoding/jobboard/pkg/logger"
	"github.com/wyfcoding/jobboard/pkg/metrics"
	"github.com/wyfcoding/jobboard/pkg/middleware"
	"github.com/wyfcoding/jobboard/pkg/mq"
	"github.com/wyfcoding/jobboard/pkg/ratelimit"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/admin/config.toml", "path to config file")
	flag.Parse()

	// 1. Config
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("load config failed: %v", err))
	}

	// 2. Logger
	if err := logger.Init(cfg.Logger); err != nil {
		panic(fmt.Sprintf("init logger failed: %v", err))
	}
	log := logger.Get()

	// 3. Database
	gormDB, err := db.Init(cfg.Database)
	if err != nil {
		panic(fmt.Sprintf("connect db failed: %v", err))
	}
	defer db.Close(gormDB)

	// Auto Migrate
	if err := gormDB.AutoMigrate(
		&domain.Account{},
		&domain.Resume{},
		&domain.Scrap{},
		&domain.Company{},
		&domain.JobPosting{},
		&domain.Application{},
		&domain.Review{},
		&domain.Comment{},
		&domain.Notice{},
	); err != nil {
		panic(fmt.Sprintf("migrate db failed: %v", err))
	}

	// 4. Infrastructure
	repos := mysql.NewRepositories(gormDB)
	uow := mysql.NewUnitOfWork(gormDB)

	// Redis 不可用时限流关闭、统计降级为直查数据库
	var statsCache application.StatsCache
	var limiter ratelimit.RateLimiter
	if cfg.Redis.Host != "" {
		redisCache, err := cache.New(cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, stats cache and rate limiting disabled", "error", err)
		} else {
			statsCache = redisCache
			limiter = ratelimit.NewRedisRateLimiter(redisCache.Client())
			defer redisCache.Close()
		}
	}

	// Kafka 未配置时事件仅落日志
	var publisher domain.EventPublisher = domain.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := mq.NewProducer(cfg.Kafka)
		defer producer.Close()
		publisher = kafka.NewPublisher(producer)
	}

	m := metrics.New(cfg.ServiceName)

	// 5. Application
	appService := application.NewAdminService(repos, uow, publisher, statsCache, m)

	// 6. Interfaces
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(), middleware.Recovery(), middleware.Metrics(m))
	if limiter != nil {
		r.Use(middleware.RateLimit(limiter, ratelimit.PerMinute(cfg.HTTP.RateLimitPerMinute), func(c *gin.Context) string {
			return c.ClientIP()
		}))
	}
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, m.Handler())
	}
	http_server.NewHandler(r, appService, http_server.HeaderIdentityResolver(), m)

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	// 7. Start
	go func() {
		log.Info("starting HTTP server", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	// 8. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	log.Info("server exiting")
}
