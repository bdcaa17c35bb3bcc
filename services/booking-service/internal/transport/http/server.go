package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Selma23042/hotel-management-systeme/services/booking-service/internal/domain"
	"github.com/Selma23042/hotel-management-systeme/services/booking-service/internal/service"
)

type Server struct {
	svc *service.BookingSvc
}

func NewServer(svc *service.BookingSvc) *Server {
	return &Server{svc: svc}
}

func (s *Server) Register(r *gin.Engine) {
	api := r.Group("/api/bookings")
	{
		api.POST("", s.create)
		api.GET("", s.list)
		api.GET("/:id", s.get)
		api.GET("/customer/:customerId", s.listByCustomer)
		api.GET("/room/:roomId", s.listByRoom)
		api.GET("/checkins/today", s.checkInsToday)
		api.GET("/checkouts/today", s.checkOutsToday)
		api.GET("/count", s.countAll)
		api.GET("/count/status/:status", s.countByStatus)
		api.POST("/:id/confirm", s.confirm)
		api.POST("/:id/cancel", s.cancel)
		api.POST("/:id/complete", s.complete)
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrRoomNotAvailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidBooking):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (s *Server) create(c *gin.Context) {
	var in struct {
		CustomerID      string `json:"customer_id" binding:"required"`
		RoomID          string `json:"room_id" binding:"required"`
		CheckInDate     string `json:"check_in_date" binding:"required"`  // 2006-01-02
		CheckOutDate    string `json:"check_out_date" binding:"required"` // 2006-01-02
		NumberOfGuests  int32  `json:"number_of_guests" binding:"required,min=1"`
		SpecialRequests string `json:"special_requests"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkIn, err := time.Parse("2006-01-02", in.CheckInDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_in_date must be YYYY-MM-DD"})
		return
	}
	checkOut, err := time.Parse("2006-01-02", in.CheckOutDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_out_date must be YYYY-MM-DD"})
		return
	}
	b, err := s.svc.Create(c.Request.Context(), service.CreateInput{
		CustomerID:      in.CustomerID,
		RoomID:          in.RoomID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfGuests:  in.NumberOfGuests,
		SpecialRequests: in.SpecialRequests,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (s *Server) get(c *gin.Context) {
	b, err := s.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (s *Server) list(c *gin.Context) {
	bs, err := s.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bs)
}

func (s *Server) listByCustomer(c *gin.Context) {
	bs, err := s.svc.ListByCustomer(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bs)
}

func (s *Server) listByRoom(c *gin.Context) {
	bs, err := s.svc.ListByRoom(c.Request.Context(), c.Param("roomId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bs)
}

func (s *Server) checkInsToday(c *gin.Context) {
	bs, err := s.svc.CheckInsToday(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bs)
}

func (s *Server) checkOutsToday(c *gin.Context) {
	bs, err := s.svc.CheckOutsToday(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bs)
}

func (s *Server) confirm(c *gin.Context) {
	b, err := s.svc.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (s *Server) cancel(c *gin.Context) {
	b, err := s.svc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (s *Server) complete(c *gin.Context) {
	b, err := s.svc.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (s *Server) countAll(c *gin.Context) {
	n, err := s.svc.CountAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (s *Server) countByStatus(c *gin.Context) {
	n, err := s.svc.CountByStatus(c.Request.Context(), domain.BookingStatus(c.Param("status")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}
