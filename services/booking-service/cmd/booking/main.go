package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/Selma23042/hotel-management-systeme/pkg/db"
	"github.com/Selma23042/hotel-management-systeme/pkg/mq"
	"github.com/Selma23042/hotel-management-systeme/pkg/obs"
	"github.com/Selma23042/hotel-management-systeme/services/booking-service/internal/client"
	"github.com/Selma23042/hotel-management-systeme/services/booking-service/internal/publisher"
	"github.com/Selma23042/hotel-management-systeme/services/booking-service/internal/repository"
	"github.com/Selma23042/hotel-management-systeme/services/booking-service/internal/service"
	thttp "github.com/Selma23042/hotel-management-systeme/services/booking-service/internal/transport/http"
)

type Cfg struct {
	PGBookingDSN    string `envconfig:"PG_BOOKING_DSN" required:"true"`
	BookingHTTPAddr string `envconfig:"BOOKING_HTTP_ADDR" default:":8083"`

	RoomServiceURL     string `envconfig:"ROOM_SERVICE_URL" default:"http://room-service:8081"`
	CustomerServiceURL string `envconfig:"CUSTOMER_SERVICE_URL" default:"http://customer-service:8082"`
	DirectoryTimeoutMS int    `envconfig:"DIRECTORY_TIMEOUT_MS" default:"5000"`

	RabbitURL       string `envconfig:"RABBIT_URL" required:"true"`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"booking.exchange"`
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

	shutdown := obs.InitTracer("booking-service")
	defer func() { _ = shutdown(context.Background()) }()

	gdb := db.Open(cfg.PGBookingDSN)
	repo := repository.NewBookingRepo(gdb)
	must(0, repo.Migrate())

	bookingPub := must(mq.NewPublisher(cfg.RabbitURL, cfg.BookingExchange))
	defer bookingPub.Close()

	timeout := time.Duration(cfg.DirectoryTimeoutMS) * time.Millisecond
	rooms := client.NewRoomClient(cfg.RoomServiceURL, timeout)
	customers := client.NewCustomerClient(cfg.CustomerServiceURL, timeout)

	svc := service.NewBookingSvc(repo, rooms, customers, publisher.NewEventPublisher(bookingPub))

	r := gin.Default()
	thttp.NewServer(svc).Register(r)

	log.Println("[booking] HTTP listening on", cfg.BookingHTTPAddr)
	log.Fatal(r.Run(cfg.BookingHTTPAddr))
}
