package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-connect/config"
	"github.com/oksasatya/campus-connect/pkg/helpers"
	"github.com/oksasatya/campus-connect/pkg/mailer"
)

// notification_worker consumes notification email jobs and sends them through Mailgun.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-notification-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; notification worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQNotificationQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQNotificationQueue, 16)
	if err != nil {
		logger.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	mg.Tag = "notification"
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			ack(msg, process(ctx, mg, msg.Body), logger)
		}
	}()

	logger.WithField("queue", cfg.RabbitMQNotificationQueue).Info("notification worker listening")
	<-stop
	logger.Info("shutting down...")
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// errPermanent marks jobs that will never succeed and must not be requeued.
var errPermanent = errors.New("permanent failure")

// process decodes and sends one job.
func process(ctx context.Context, sender mailer.Sender, body []byte) error {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return errors.Join(errPermanent, err)
	}
	subject, text, html, err := job.Compose()
	if err != nil {
		return errors.Join(errPermanent, err)
	}
	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	return sender.Send(c, job.To, subject, text, html)
}

// acker is the part of amqp.Delivery ack needs.
type acker interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

var _ acker = amqp.Delivery{}

func ack(d acker, err error, logger *logrus.Logger) {
	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, errPermanent):
		helpers.LogError(logger, "dropping notification job", err, nil)
		_ = d.Nack(false, false)
	default:
		helpers.LogError(logger, "send failed, requeueing", err, nil)
		_ = d.Nack(false, true)
	}
}
