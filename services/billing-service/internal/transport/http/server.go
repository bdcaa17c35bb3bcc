package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Selma23042/hotel-management-systeme/services/billing-service/internal/domain"
	"github.com/Selma23042/hotel-management-systeme/services/billing-service/internal/service"
)

type Server struct {
	svc *service.InvoiceSvc
}

func NewServer(svc *service.InvoiceSvc) *Server {
	return &Server{svc: svc}
}

func (s *Server) Register(r *gin.Engine) {
	g := r.Group("/api/billing/invoices")
	g.POST("", s.create)
	g.GET("", s.list)
	g.GET("/:id", s.get)
	g.GET("/number/:invoiceNumber", s.getByNumber)
	g.GET("/booking/:bookingId", s.getByBooking)
	g.GET("/customer/:customerId", s.listByCustomer)
	g.GET("/status/:status", s.listByStatus)
	g.GET("/count", s.count)
	g.GET("/count/status/:status", s.countByStatus)
	g.POST("/:id/pay", s.pay)
	g.POST("/:id/cancel", s.cancel)
}

func (s *Server) create(c *gin.Context) {
	var in struct {
		BookingID    string  `json:"booking_id" binding:"required"`
		CustomerID   string  `json:"customer_id" binding:"required"`
		RoomID       string  `json:"room_id" binding:"required"`
		CheckInDate  string  `json:"check_in_date" binding:"required"`  // 2006-01-02
		CheckOutDate string  `json:"check_out_date" binding:"required"` // 2006-01-02
		RoomCharges  float64 `json:"room_charges" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inv, err := s.svc.CreateInvoice(c.Request.Context(), service.CreateInvoiceInput{
		BookingID:    in.BookingID,
		CustomerID:   in.CustomerID,
		RoomID:       in.RoomID,
		CheckInDate:  in.CheckInDate,
		CheckOutDate: in.CheckOutDate,
		RoomCharges:  in.RoomCharges,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (s *Server) list(c *gin.Context) {
	invs, err := s.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, invs)
}

func (s *Server) get(c *gin.Context) {
	inv, err := s.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (s *Server) getByNumber(c *gin.Context) {
	inv, err := s.svc.GetByNumber(c.Request.Context(), c.Param("invoiceNumber"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (s *Server) getByBooking(c *gin.Context) {
	inv, err := s.svc.GetByBooking(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (s *Server) listByCustomer(c *gin.Context) {
	invs, err := s.svc.ListByCustomer(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, invs)
}

func (s *Server) listByStatus(c *gin.Context) {
	invs, err := s.svc.ListByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, invs)
}

func (s *Server) count(c *gin.Context) {
	n, err := s.svc.CountAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (s *Server) countByStatus(c *gin.Context) {
	n, err := s.svc.CountByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

type payRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

func (s *Server) pay(c *gin.Context) {
	var req payRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inv, err := s.svc.ProcessPayment(c.Request.Context(), c.Param("id"), req.PaymentMethod)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (s *Server) cancel(c *gin.Context) {
	inv, err := s.svc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvoiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInvoice):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
