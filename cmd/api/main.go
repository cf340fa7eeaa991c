package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/launch-webhooks/internal/infra/database"
	"github.com/xavierca1/launch-webhooks/internal/infra/http/handlers"
	"github.com/xavierca1/launch-webhooks/internal/infra/http/middleware"
	"github.com/xavierca1/launch-webhooks/internal/infra/integration/whatsapp"
	"github.com/xavierca1/launch-webhooks/internal/infra/mail"
	"github.com/xavierca1/launch-webhooks/internal/infra/queue"
	"github.com/xavierca1/launch-webhooks/internal/infra/worker"
	"github.com/xavierca1/launch-webhooks/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		panic(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	launchRepo := database.NewLaunchRepository(db)
	integrationRepo := database.NewWebhookIntegrationRepository(db)
	leadRepo := database.NewLeadRepository(db)
	saleRepo := database.NewSaleRepository(db)

	// 2. Producer e senders de notificação
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if mailPort == 0 {
		mailPort = 587
	}
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"),
	)

	waClient := whatsapp.NewClient(os.Getenv("WHATSAPP_ACCESS_TOKEN"), os.Getenv("WHATSAPP_PHONE_ID"))
	waSender := mail.NewWhatsAppSender(waClient, os.Getenv("WHATSAPP_TEMPLATE_ID"))

	// 3. Workers
	saleWorker := queue.NewWorker(rabbitMQ.Ch, mailSender, waSender)
	go saleWorker.Start(queue.QueueName)

	sweeper := worker.NewAbandonedCheckoutWorker(db)
	go sweeper.Start(context.Background())

	// 4. UseCases
	resolveUC := usecase.NewResolveLaunchUseCase(launchRepo, integrationRepo)
	captureUC := usecase.NewCaptureLeadUseCase(leadRepo)
	recordSaleUC := usecase.NewRecordSaleUseCase(leadRepo, saleRepo, usecase.DefaultStatusNormalizer(), producer)

	// 5. Handlers
	captureHandler := handlers.NewCaptureHandler(resolveUC, captureUC)
	salesHandler := handlers.NewSalesHandler(resolveUC, recordSaleUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
	}))

	r.Post("/capture/{launchCode}", captureHandler.HandleByLaunchCode)
	r.Post("/hooks/{webhookID}", captureHandler.HandleByWebhookID)
	r.Post("/hooks/{webhookID}/sales", salesHandler.HandleByWebhookID)
	r.Post("/sales/{platform}/{launchCode}", salesHandler.HandleByPlatformAndCode)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🔥 Webhooks API rodando na porta :%s", port)
	http.ListenAndServe(":"+port, r)
}
