package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MikeMC777/foodorders/internal/config"
	"github.com/MikeMC777/foodorders/internal/notify"
	"github.com/MikeMC777/foodorders/internal/rabbitmq"
	"github.com/MikeMC777/foodorders/internal/user"
)

// notify-worker drains the notification queue filled by order-service when
// NOTIFY_MODE=amqp.
func main() {
	cfg := config.Load()
	config.SetupLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mdb, err := user.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		fatal("mongo", err)
	}
	defer func() { _ = mdb.Client().Disconnect(context.Background()) }()
	users := user.NewMongoRepo(mdb)

	sender, err := notify.NewPushSender(ctx, cfg.FCMCredentialsFile, cfg.PushLinkBase)
	if err != nil {
		fatal("push sender", err)
	}
	dispatcher := notify.NewDispatcher(users, sender, notify.WithConcurrency(cfg.PushConcurrency))

	mq, err := rabbitmq.NewClient(cfg.AMQPURL)
	if err != nil {
		fatal("rabbitmq", err)
	}
	defer mq.Close()
	if _, err := mq.DeclareQueue(rabbitmq.DeclareQueueConfig{Name: cfg.NotifyQueue, Durable: true}); err != nil {
		fatal("declare queue", err)
	}
	deliveries, err := mq.Consume(cfg.NotifyQueue, "notify-worker", cfg.PushConcurrency)
	if err != nil {
		fatal("consume", err)
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
		if err := grpcSrv.Serve(lis); err != nil {
			slog.Error("grpc serve", "err", err)
		}
	}()
	slog.Info("notify-worker running", "queue", cfg.NotifyQueue, "grpc_addr", cfg.GRPCAddr)

	notify.NewConsumer(dispatcher, cfg.NotifyTimeout).Run(ctx, deliveries)

	hs.Shutdown()
	grpcSrv.GracefulStop()
}

func fatal(what string, err error) {
	slog.Error("startup failed", "step", what, "err", err)
	os.Exit(1)
}
