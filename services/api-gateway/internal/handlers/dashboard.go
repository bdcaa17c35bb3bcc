package handlers

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/Selma23042/hotel-management-systeme/services/api-gateway/internal/proxy"
)

// DashboardStats is the aggregate view the admin frontend renders.
type DashboardStats struct {
	TotalBookings   int64 `json:"total_bookings"`
	PendingBookings int64 `json:"pending_bookings"`
	TotalInvoices   int64 `json:"total_invoices"`
	AvailableRooms  int64 `json:"available_rooms"`
}

type Dashboard struct {
	counts     *proxy.CountClient
	bookingURL string
	billingURL string
	roomURL    string
}

func NewDashboard(counts *proxy.CountClient, bookingURL, billingURL, roomURL string) *Dashboard {
	return &Dashboard{counts: counts, bookingURL: bookingURL, billingURL: billingURL, roomURL: roomURL}
}

// Stats fans out to the four counters in parallel. A counter that cannot be
// fetched reports zero rather than failing the whole dashboard.
func (d *Dashboard) Stats(c *gin.Context) {
	var stats DashboardStats

	fetch := func(dst *int64, url string) func() {
		return func() {
			n, err := d.counts.Count(url)
			if err != nil {
				log.Printf("[gateway] dashboard counter %s: %v", url, err)
				return
			}
			*dst = n
		}
	}

	jobs := []func(){
		fetch(&stats.TotalBookings, d.bookingURL+"/api/bookings/count"),
		fetch(&stats.PendingBookings, d.bookingURL+"/api/bookings/count/status/PENDING"),
		fetch(&stats.TotalInvoices, d.billingURL+"/api/billing/invoices/count"),
		fetch(&stats.AvailableRooms, d.roomURL+"/api/rooms/count/available"),
	}

	var wg sync.WaitGroup
	for _, job := range jobs {
		wg.Add(1)
		go func(run func()) {
			defer wg.Done()
			run()
		}(job)
	}
	wg.Wait()

	c.JSON(http.StatusOK, stats)
}
