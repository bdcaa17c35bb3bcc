package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/Selma23042/hotel-management-systeme/pkg/db"
	"github.com/Selma23042/hotel-management-systeme/pkg/obs"
	"github.com/Selma23042/hotel-management-systeme/services/customer-service/internal/repository"
	"github.com/Selma23042/hotel-management-systeme/services/customer-service/internal/service"
	thttp "github.com/Selma23042/hotel-management-systeme/services/customer-service/internal/transport/http"
)

type Cfg struct {
	PGCustomerDSN    string `envconfig:"PG_CUSTOMER_DSN" required:"true"`
	CustomerHTTPAddr string `envconfig:"CUSTOMER_HTTP_ADDR" default:":8082"`
	JWTExpireMin     int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`
}

func main() {
	_ = godotenv.Load()

	var cfg Cfg
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal(err)
	}

	shutdown := obs.InitTracer("customer-service")
	defer func() { _ = shutdown(context.Background()) }()

	gdb := db.Open(cfg.PGCustomerDSN)
	repo := repository.NewCustomerRepo(gdb)
	if err := repo.Migrate(); err != nil {
		log.Fatal(err)
	}

	svc := service.NewCustomerSvc(repo, time.Duration(cfg.JWTExpireMin)*time.Minute)

	r := gin.Default()
	thttp.NewServer(svc).Register(r)

	log.Println("[customer] HTTP listening on", cfg.CustomerHTTPAddr)
	log.Fatal(r.Run(cfg.CustomerHTTPAddr))
}
