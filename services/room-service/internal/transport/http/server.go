package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Selma23042/hotel-management-systeme/services/room-service/internal/domain"
	"github.com/Selma23042/hotel-management-systeme/services/room-service/internal/service"
)

type Server struct {
	svc *service.RoomSvc
}

func NewServer(svc *service.RoomSvc) *Server {
	return &Server{svc: svc}
}

func (s *Server) Register(r *gin.Engine) {
	api := r.Group("/api/rooms")
	{
		api.POST("", s.create)
		api.GET("", s.list)
		api.GET("/:id", s.get)
		api.GET("/number/:number", s.getByNumber)
		api.GET("/status/:status", s.listByStatus)
		api.GET("/type/:type", s.listByType)
		api.GET("/type/:type/available", s.listAvailableByType)
		api.GET("/price", s.listByPriceRange)
		api.GET("/count/available", s.countAvailable)
		api.PUT("/:id", s.update)
		api.PATCH("/:id/status", s.updateStatus)
		api.DELETE("/:id", s.delete)
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrRoomExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidRoom):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type roomRequest struct {
	RoomNumber    string  `json:"room_number" binding:"required"`
	RoomType      string  `json:"room_type" binding:"required"`
	PricePerNight float64 `json:"price_per_night" binding:"required"`
	Status        string  `json:"status"`
	Floor         int32   `json:"floor"`
	Capacity      int32   `json:"capacity" binding:"required"`
	Description   string  `json:"description"`
	ImageURL      string  `json:"image_url"`
}

func (s *Server) create(c *gin.Context) {
	var in roomRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, err := s.svc.Create(c.Request.Context(), domain.Room{
		RoomNumber:    in.RoomNumber,
		RoomType:      domain.RoomType(in.RoomType),
		PricePerNight: in.PricePerNight,
		Status:        domain.RoomStatus(in.Status),
		Floor:         in.Floor,
		Capacity:      in.Capacity,
		Description:   in.Description,
		ImageURL:      in.ImageURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (s *Server) get(c *gin.Context) {
	room, err := s.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (s *Server) getByNumber(c *gin.Context) {
	room, err := s.svc.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (s *Server) list(c *gin.Context) {
	rooms, err := s.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (s *Server) listByStatus(c *gin.Context) {
	rooms, err := s.svc.ListByStatus(c.Request.Context(), domain.RoomStatus(c.Param("status")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (s *Server) listByType(c *gin.Context) {
	rooms, err := s.svc.ListByType(c.Request.Context(), domain.RoomType(c.Param("type")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (s *Server) listAvailableByType(c *gin.Context) {
	rooms, err := s.svc.ListAvailableByType(c.Request.Context(), domain.RoomType(c.Param("type")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (s *Server) listByPriceRange(c *gin.Context) {
	min, _ := strconv.ParseFloat(c.DefaultQuery("min", "0"), 64)
	max, _ := strconv.ParseFloat(c.DefaultQuery("max", "0"), 64)
	rooms, err := s.svc.ListByPriceRange(c.Request.Context(), min, max)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (s *Server) update(c *gin.Context) {
	var in roomRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, err := s.svc.Update(c.Request.Context(), domain.Room{
		ID:            c.Param("id"),
		RoomNumber:    in.RoomNumber,
		RoomType:      domain.RoomType(in.RoomType),
		PricePerNight: in.PricePerNight,
		Status:        domain.RoomStatus(in.Status),
		Floor:         in.Floor,
		Capacity:      in.Capacity,
		Description:   in.Description,
		ImageURL:      in.ImageURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (s *Server) updateStatus(c *gin.Context) {
	var in struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, err := s.svc.UpdateStatus(c.Request.Context(), c.Param("id"), domain.RoomStatus(in.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (s *Server) delete(c *gin.Context) {
	if err := s.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) countAvailable(c *gin.Context) {
	n, err := s.svc.CountAvailable(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}
