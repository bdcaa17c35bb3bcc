package config

import (
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// JWT
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`

	// Service base URLs (gateway + inter-service HTTP)
	RoomServiceURL     string `envconfig:"ROOM_SERVICE_URL" default:"http://room-service:8081"`
	CustomerServiceURL string `envconfig:"CUSTOMER_SERVICE_URL" default:"http://customer-service:8082"`
	BookingServiceURL  string `envconfig:"BOOKING_SERVICE_URL" default:"http://booking-service:8083"`
	BillingServiceURL  string `envconfig:"BILLING_SERVICE_URL" default:"http://billing-service:8084"`

	GatewayHTTPAddr string `envconfig:"GATEWAY_HTTP_ADDR" default:":8080"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
