// Command push_relay drains the push queue filled by the backend when PUSH_TRANSPORT=rabbitmq
// and delivers each message through FCM.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/kewat_ledger/internal/adapters/push"
	"github.com/SscSPs/kewat_ledger/internal/platform/config"
	"github.com/SscSPs/kewat_ledger/pkg/logging"
)

const consumerName = "kewat-push-relay"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := logging.Setup(os.Stdout, cfg.LogFormat, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender, err := push.NewFCMSender(ctx, cfg.FCMProjectID, cfg.FCMCredentialsFile)
	if err != nil {
		logger.Error("Failed to initialize FCM sender", slog.String("error", err.Error()))
		os.Exit(1)
	}

	conn, ch, err := push.DialQueue(cfg.RabbitMQURL, cfg.PushQueue)
	if err != nil {
		logger.Error("Failed to connect to push queue", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer conn.Close()
	defer ch.Close()

	// one unacknowledged delivery at a time keeps FCM calls sequential per relay instance
	if err := ch.Qos(1, 0, false); err != nil {
		logger.Error("Failed to set channel QoS", slog.String("error", err.Error()))
		os.Exit(1)
	}

	deliveries, err := ch.Consume(
		cfg.PushQueue, // queue
		consumerName,  // consumer
		false,         // auto-ack
		false,         // exclusive
		false,         // no-local
		false,         // no-wait
		nil,           // args
	)
	if err != nil {
		logger.Error("Failed to register consumer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Push relay started", slog.String("queue", cfg.PushQueue))
	err = push.NewRelay(sender, logger).Run(ctx, deliveries)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Push relay stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Push relay stopped")
}
