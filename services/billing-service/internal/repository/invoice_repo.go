package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Selma23042/hotel-management-systeme/services/billing-service/internal/domain"
)

// ErrDuplicateBooking means an invoice for the booking already exists.
var ErrDuplicateBooking = errors.New("duplicate_booking")

type InvoiceRepo struct {
	db *gorm.DB
}

func NewInvoiceRepo(db *gorm.DB) *InvoiceRepo {
	return &InvoiceRepo{db: db}
}

func (r *InvoiceRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Invoice{})
}

// CreateUnique inserts the invoice unless one already exists for the same
// booking. The existence check runs inside the transaction; the unique index
// on booking_id backstops races the check cannot see.
func (r *InvoiceRepo) CreateUnique(ctx context.Context, inv *domain.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Invoice
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("booking_id = ?", inv.BookingID).
			Take(&existing).Error
		if err == nil {
			return ErrDuplicateBooking
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if inv.ID == "" {
			inv.ID = uuid.NewString()
		}
		if inv.InvoiceNumber == "" {
			inv.InvoiceNumber = fmt.Sprintf("INV-%d", time.Now().UnixMilli())
		}
		return tx.Create(inv).Error
	})
}

func (r *InvoiceRepo) ByID(ctx context.Context, id string) (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepo) ByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := r.db.WithContext(ctx).First(&inv, "invoice_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepo) ByBookingID(ctx context.Context, bookingID string) (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := r.db.WithContext(ctx).First(&inv, "booking_id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepo) ExistsByBookingID(ctx context.Context, bookingID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("booking_id = ?", bookingID).Count(&n).Error
	return n > 0, err
}

func (r *InvoiceRepo) ByCustomer(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	var invs []domain.Invoice
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&invs).Error
	return invs, err
}

func (r *InvoiceRepo) ByStatus(ctx context.Context, status domain.InvoiceStatus) ([]domain.Invoice, error) {
	var invs []domain.Invoice
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&invs).Error
	return invs, err
}

func (r *InvoiceRepo) All(ctx context.Context) ([]domain.Invoice, error) {
	var invs []domain.Invoice
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&invs).Error
	return invs, err
}

func (r *InvoiceRepo) Save(ctx context.Context, inv *domain.Invoice) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *InvoiceRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Invoice{}).Count(&n).Error
	return n, err
}

func (r *InvoiceRepo) CountByStatus(ctx context.Context, status domain.InvoiceStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("status = ?", status).Count(&n).Error
	return n, err
}
