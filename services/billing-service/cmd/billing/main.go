package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/Selma23042/hotel-management-systeme/pkg/db"
	"github.com/Selma23042/hotel-management-systeme/pkg/events"
	"github.com/Selma23042/hotel-management-systeme/pkg/mq"
	"github.com/Selma23042/hotel-management-systeme/pkg/obs"
	"github.com/Selma23042/hotel-management-systeme/services/billing-service/internal/consumer"
	"github.com/Selma23042/hotel-management-systeme/services/billing-service/internal/repository"
	"github.com/Selma23042/hotel-management-systeme/services/billing-service/internal/service"
	thttp "github.com/Selma23042/hotel-management-systeme/services/billing-service/internal/transport/http"
)

type Cfg struct {
	PGBillingDSN    string `envconfig:"PG_BILLING_DSN" required:"true"`
	BillingHTTPAddr string `envconfig:"BILLING_HTTP_ADDR" default:":8084"`

	RabbitURL       string `envconfig:"RABBIT_URL" required:"true"`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"booking.exchange"`
	ConfirmedQueue  string `envconfig:"CONFIRMED_QUEUE" default:"billing.booking.confirmed.q"`
	CompletedQueue  string `envconfig:"COMPLETED_QUEUE" default:"billing.booking.completed.q"`
	Prefetch        int    `envconfig:"MQ_PREFETCH" default:"8"`
	Workers         int    `envconfig:"MQ_WORKERS" default:"5"`
	UseDLX          bool   `envconfig:"MQ_USE_DLX" default:"false"`
	DLXName         string `envconfig:"MQ_DLX_NAME" default:"booking.dlx"`
	DLXQueue        string `envconfig:"MQ_DLX_QUEUE" default:"billing.booking.dead.q"`

	TaxRate float64 `envconfig:"TAX_RATE" default:"0.10"`
}

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	_ = godotenv.Load()

	var cfg Cfg
	must(0, envconfig.Process("", &cfg))

	shutdown := obs.InitTracer("billing-service")
	defer func() { _ = shutdown(context.Background()) }()

	gdb := db.Open(cfg.PGBillingDSN)
	repo := repository.NewInvoiceRepo(gdb)
	must(0, repo.Migrate())

	svc := service.NewInvoiceSvc(repo, service.Config{TaxRate: cfg.TaxRate})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	completedSrc := must(mq.NewConsumer(mq.ConsumerConfig{
		URL:      cfg.RabbitURL,
		Exchange: cfg.BookingExchange,
		Queue:    cfg.CompletedQueue,
		Bindings: []string{events.RKBookingCompleted},
		Prefetch: cfg.Prefetch,
		UseDLX:   cfg.UseDLX,
		DLXName:  cfg.DLXName,
		DLXQueue: cfg.DLXQueue,
		Name:     "billing-completed",
	}))
	defer completedSrc.Close()

	confirmedSrc := must(mq.NewConsumer(mq.ConsumerConfig{
		URL:      cfg.RabbitURL,
		Exchange: cfg.BookingExchange,
		Queue:    cfg.ConfirmedQueue,
		Bindings: []string{events.RKBookingConfirmed},
		Prefetch: cfg.Prefetch,
		Name:     "billing-confirmed",
	}))
	defer confirmedSrc.Close()

	go func() {
		if err := consumer.NewBookingConsumer(svc, completedSrc, cfg.Workers).Run(ctx); err != nil {
			log.Printf("[billing] completed consumer stopped: %v", err)
		}
	}()
	go func() {
		if err := consumer.NewBookingConsumer(svc, confirmedSrc, cfg.Workers).Run(ctx); err != nil {
			log.Printf("[billing] confirmed consumer stopped: %v", err)
		}
	}()

	r := gin.Default()
	thttp.NewServer(svc).Register(r)

	srv := &http.Server{Addr: cfg.BillingHTTPAddr, Handler: r}
	go func() {
		log.Println("[billing] HTTP listening on", cfg.BillingHTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("[billing] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
