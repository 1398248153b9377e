package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MikeMC777/foodorders/internal/auth"
	"github.com/MikeMC777/foodorders/internal/config"
	"github.com/MikeMC777/foodorders/internal/db"
	"github.com/MikeMC777/foodorders/internal/events"
	"github.com/MikeMC777/foodorders/internal/notify"
	ord "github.com/MikeMC777/foodorders/internal/order"
	"github.com/MikeMC777/foodorders/internal/rabbitmq"
	"github.com/MikeMC777/foodorders/internal/restaurant"
	"github.com/MikeMC777/foodorders/internal/tracing"
	"github.com/MikeMC777/foodorders/internal/user"
)

// @title       Food Orders API
// @version     1.0
// @description Order lifecycle and notification inbox.
// @BasePath    /
// @securityDefinitions.apikey Bearer
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()
	config.SetupLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer, err := tracing.Init("order-service", cfg.JaegerEndpoint)
	if err != nil {
		fatal("tracing init", err)
	}

	pool, err := db.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		fatal("postgres", err)
	}
	defer pool.Close()

	restaurants := restaurant.NewPGRepo(pool)
	var orders ord.Repository = ord.NewPGRepo(pool)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unreachable, order reads go to postgres until it recovers", "addr", cfg.RedisAddr, "err", err)
		}
		orders = ord.NewCachedRepo(orders, rdb, cfg.RedisTTL)
	}

	users, closeUsers, err := openUsers(ctx, cfg)
	if err != nil {
		fatal("user store", err)
	}
	defer closeUsers()

	secret := cfg.JWTSecret
	if secret == "" {
		slog.Warn("JWT_SECRET not set, using an insecure development secret")
		secret = "dev-secret"
	}
	issuer := auth.NewIssuer(secret, cfg.JWTTTL)
	userSvc := user.NewService(users, issuer)
	if err := userSvc.EnsureAdmin(ctx, cfg.AdminMobile, cfg.AdminPassword); err != nil {
		fatal("seed admin", err)
	}

	notifier, closeNotifier, err := newNotifier(ctx, cfg, users)
	if err != nil {
		fatal("notifier", err)
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaOrderTopic, cfg.KafkaBrokers...)
		defer kp.Close()
		publisher = kp
	}

	lc := ord.NewLifecycle(orders, restaurants, notifier, publisher)
	r := newRouter(deps{
		orders:      lc,
		restaurants: restaurants,
		users:       userSvc,
		tokens:      issuer,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           otelhttp.NewHandler(r, "order-service"),
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcSrv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		fatal("grpc listen", err)
	}
	go func() {
		slog.Info("grpc health listening", "addr", cfg.GRPCAddr)
		if err := grpcSrv.Serve(lis); err != nil {
			slog.Error("grpc serve", "err", err)
		}
	}()
	go func() {
		slog.Info("order-service listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http serve", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	hs.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown", "err", err)
	}
	grpcSrv.GracefulStop()
	closeNotifier()
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		slog.Error("tracer shutdown", "err", err)
	}
}

func fatal(what string, err error) {
	slog.Error("startup failed", "step", what, "err", err)
	os.Exit(1)
}

var errMemoryUsersWithWorker = errors.New("MONGO_URI=memory cannot be combined with NOTIFY_MODE=amqp: notify-worker writes inboxes to MongoDB")

// openUsers connects the identity store. MONGO_URI=memory keeps users in
// process, which is only useful for local runs with inline notifications.
func openUsers(ctx context.Context, cfg config.Config) (user.Repository, func(), error) {
	if cfg.MongoURI == "memory" {
		if cfg.NotifyMode == "amqp" {
			return nil, nil, errMemoryUsersWithWorker
		}
		slog.Warn("using in-memory user store")
		return user.NewMemoryRepo(), func() {}, nil
	}
	mdb, err := user.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, nil, err
	}
	repo := user.NewMongoRepo(mdb)
	if err := repo.CreateIndexes(ctx); err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mdb.Client().Disconnect(c)
	}
	return repo, closeFn, nil
}

// newNotifier returns the dispatch path for order notifications. In amqp
// mode jobs are queued for notify-worker; otherwise they run in process.
func newNotifier(ctx context.Context, cfg config.Config, store notify.Store) (ord.Notifier, func(), error) {
	if cfg.NotifyMode == "amqp" {
		client, err := rabbitmq.NewClient(cfg.AMQPURL)
		if err != nil {
			return nil, nil, err
		}
		if _, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{Name: cfg.NotifyQueue, Durable: true}); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return notify.NewAMQPPublisher(client.Channel(), cfg.NotifyQueue), func() { _ = client.Close() }, nil
	}

	sender, err := notify.NewPushSender(ctx, cfg.FCMCredentialsFile, cfg.PushLinkBase)
	if err != nil {
		return nil, nil, err
	}
	d := notify.NewDispatcher(store, sender, notify.WithConcurrency(cfg.PushConcurrency))
	async := notify.NewAsync(d, cfg.NotifyTimeout)
	return async, async.Wait, nil
}
