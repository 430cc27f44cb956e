package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"appointment-booking-api/internal/cache"
	"appointment-booking-api/internal/config"
	"appointment-booking-api/internal/handler"
	"appointment-booking-api/internal/middleware"
	"appointment-booking-api/internal/notification"
	"appointment-booking-api/internal/rpc"
	"appointment-booking-api/internal/service"
	"appointment-booking-api/internal/storage"
	"appointment-booking-api/internal/store"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// database
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	log.Info("connected to postgres")

	// store and service must agree on the calendar
	loc := time.Local
	st := store.New(pool, loc)
	if schema, err := os.ReadFile("db/migrations/001_init.sql"); err != nil {
		log.Warnf("migration file not found, skipping: %v", err)
	} else if err := st.Migrate(ctx, string(schema)); err != nil {
		log.Warnf("migration warning: %v", err)
	} else {
		log.Info("migration applied")
	}

	notifications, err := notification.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer notifications.Close(context.Background())

	redisCache, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPass)
	if err != nil {
		log.Fatal(err)
	}
	defer redisCache.Close()
	log.Infof("connected to redis at %s", cfg.RedisAddr)

	disk, err := storage.NewDisk(cfg.TmpDir, cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}

	svc := service.New(service.Deps{
		Users:         st.Users(),
		Appointments:  st.Appointments(),
		Notifications: notifications,
		RefreshTokens: st.RefreshTokens(),
		Cache:         redisCache,
		Storage:       disk,
		Secret:        cfg.JWTSecret,
		Loc:           loc,
	})
	rl := middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	// grpc
	grpcSrv := rpc.NewServer(svc, cfg.JWTSecret, rl)
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	go func() {
		log.Infof("grpc on :%s", cfg.GRPCPort)
		if err := grpcSrv.Serve(lis); err != nil {
			log.Errorf("grpc: %v", err)
		}
	}()

	// http
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.Errors())
	handler.New(svc, handler.Options{
		Secret:    cfg.JWTSecret,
		TmpDir:    cfg.TmpDir,
		UploadDir: cfg.UploadDir,
		APIURL:    cfg.APIURL,
	}).Register(r, rl)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Infof("http on :%s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("http: %v", err)
		}
	}()

	<-ctx.Done()
	log.Warn("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("http shutdown: %v", err)
	}
	grpcSrv.GracefulStop()
}
