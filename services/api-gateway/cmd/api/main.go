package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Selma23042/hotel-management-systeme/pkg/config"
	"github.com/Selma23042/hotel-management-systeme/pkg/obs"
	"github.com/Selma23042/hotel-management-systeme/services/api-gateway/internal/handlers"
	"github.com/Selma23042/hotel-management-systeme/services/api-gateway/internal/middlewares"
	"github.com/Selma23042/hotel-management-systeme/services/api-gateway/internal/proxy"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	shutdown := obs.InitTracer("api-gateway")
	defer func() { _ = shutdown(context.Background()) }()

	rooms := proxy.NewUpstream("room-service", cfg.RoomServiceURL)
	customers := proxy.NewUpstream("customer-service", cfg.CustomerServiceURL)
	bookings := proxy.NewUpstream("booking-service", cfg.BookingServiceURL)
	billing := proxy.NewUpstream("billing-service", cfg.BillingServiceURL)

	dashboard := handlers.NewDashboard(
		proxy.NewCountClient(5*time.Second),
		cfg.BookingServiceURL, cfg.BillingServiceURL, cfg.RoomServiceURL,
	)

	r := gin.Default()

	// registration and login stay open; everything else needs a token
	authed := r.Group("/", middlewares.JWTAuth(
		"/api/customers/register",
		"/api/customers/login",
	))
	authed.Any("/api/rooms", rooms.Handler())
	authed.Any("/api/rooms/*path", rooms.Handler())
	authed.Any("/api/customers", customers.Handler())
	authed.Any("/api/customers/*path", customers.Handler())
	authed.Any("/api/bookings", bookings.Handler())
	authed.Any("/api/bookings/*path", bookings.Handler())
	authed.Any("/api/billing/*path", billing.Handler())
	authed.GET("/api/dashboard/stats", dashboard.Stats)

	log.Println("[gateway] HTTP listening on", cfg.GatewayHTTPAddr)
	log.Fatal(r.Run(cfg.GatewayHTTPAddr))
}
