package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/Selma23042/hotel-management-systeme/pkg/db"
	"github.com/Selma23042/hotel-management-systeme/pkg/obs"
	"github.com/Selma23042/hotel-management-systeme/services/room-service/internal/repository"
	"github.com/Selma23042/hotel-management-systeme/services/room-service/internal/service"
	thttp "github.com/Selma23042/hotel-management-systeme/services/room-service/internal/transport/http"
)

type Cfg struct {
	PGRoomDSN    string `envconfig:"PG_ROOM_DSN" required:"true"`
	RoomHTTPAddr string `envconfig:"ROOM_HTTP_ADDR" default:":8081"`
}

func main() {
	_ = godotenv.Load()

	var cfg Cfg
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal(err)
	}

	shutdown := obs.InitTracer("room-service")
	defer func() { _ = shutdown(context.Background()) }()

	gdb := db.Open(cfg.PGRoomDSN)
	repo := repository.NewRoomRepo(gdb)
	if err := repo.Migrate(); err != nil {
		log.Fatal(err)
	}

	svc := service.NewRoomSvc(repo)

	r := gin.Default()
	thttp.NewServer(svc).Register(r)

	log.Println("[room] HTTP listening on", cfg.RoomHTTPAddr)
	log.Fatal(r.Run(cfg.RoomHTTPAddr))
}
