package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"internport-backend/internal/domain"
	"internport-backend/internal/jobs"
	"internport-backend/internal/notification"
	"internport-backend/internal/repository/postgres"
	"internport-backend/pkg/email"
	"internport-backend/pkg/logger"
	"internport-backend/pkg/metrics"

	"github.com/spf13/cobra"
)

var workerDirectMail bool

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run scheduled jobs and the mail consumer",
	Long: `Run the River scheduler: deadline reminders every hour and a daily
application summary per company.

Mail is queued on RabbitMQ and delivered by a consumer in the same process.
When the broker cannot be reached, or with --direct-mail, jobs send mail
through MAIL_DRIVER synchronously.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWorker()
	},
}

func init() {
	workerCmd.Flags().BoolVar(&workerDirectMail, "direct-mail", false, "send mail directly instead of through RabbitMQ")
}

func runWorker() error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.Init()

	pool, err := connectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	sender, err := email.New(cfg)
	if err != nil {
		return fmt.Errorf("mail sender: %w", err)
	}

	var mailer domain.Mailer = notification.NewDirectMailer(sender)
	if !workerDirectMail {
		publisher := notification.NewPublisher(cfg.RabbitMQURL, cfg.MailQueueName)
		if err := publisher.Connect(); err != nil {
			logger.Log.Warn("rabbitmq unavailable, sending mail directly", "error", err)
		} else {
			defer publisher.Close()
			mailer = publisher

			consumer := notification.NewConsumer(cfg.RabbitMQURL, cfg.MailQueueName, sender)
			go func() {
				if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
					logger.Log.Error("mail consumer stopped", "error", err)
				}
			}()
		}
	}

	workers := jobs.NewWorkers(postgres.NewNotificationRepository(pool), mailer, logger.Log)
	client, err := jobs.NewClient(pool, workers, logger.Log)
	if err != nil {
		return fmt.Errorf("river client: %w", err)
	}
	if err := client.Start(ctx); err != nil {
		return fmt.Errorf("river start: %w", err)
	}
	logger.Log.Info("worker started")

	<-ctx.Done()
	logger.Log.Info("stopping worker")

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := client.Stop(stopCtx); err != nil {
		logger.Log.Error("river stop", "error", err)
	}
	return nil
}
