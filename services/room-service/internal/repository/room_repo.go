package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Selma23042/hotel-management-systeme/services/room-service/internal/domain"
)

type RoomRepo struct {
	db *gorm.DB
}

func NewRoomRepo(db *gorm.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

func (r *RoomRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Room{})
}

func (r *RoomRepo) Create(ctx context.Context, room *domain.Room) error {
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *RoomRepo) ByID(ctx context.Context, id string) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepo) ByNumber(ctx context.Context, number string) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).First(&room, "room_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Room{}).Where("room_number = ?", number).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RoomRepo) All(ctx context.Context) ([]domain.Room, error) {
	var out []domain.Room
	if err := r.db.WithContext(ctx).Order("room_number ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RoomRepo) ByStatus(ctx context.Context, status domain.RoomStatus) ([]domain.Room, error) {
	var out []domain.Room
	if err := r.db.WithContext(ctx).Where("status = ?", status).Order("room_number ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RoomRepo) ByType(ctx context.Context, t domain.RoomType) ([]domain.Room, error) {
	var out []domain.Room
	if err := r.db.WithContext(ctx).Where("room_type = ?", t).Order("room_number ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RoomRepo) AvailableByType(ctx context.Context, t domain.RoomType) ([]domain.Room, error) {
	var out []domain.Room
	err := r.db.WithContext(ctx).
		Where("room_type = ? AND status = ?", t, domain.RoomAvailable).
		Order("room_number ASC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RoomRepo) ByPriceRange(ctx context.Context, min, max float64) ([]domain.Room, error) {
	var out []domain.Room
	err := r.db.WithContext(ctx).
		Where("price_per_night BETWEEN ? AND ?", min, max).
		Order("price_per_night ASC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RoomRepo) Update(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Model(&domain.Room{}).Where("id = ?", room.ID).Updates(room).Error
}

func (r *RoomRepo) UpdateStatus(ctx context.Context, id string, status domain.RoomStatus) (*domain.Room, error) {
	var room domain.Room
	tx := r.db.WithContext(ctx).Begin()
	if err := tx.First(&room, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}
	room.Status = status
	if err := tx.Save(&room).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return &room, tx.Commit().Error
}

func (r *RoomRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Room{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (r *RoomRepo) CountByStatus(ctx context.Context, status domain.RoomStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Room{}).Where("status = ?", status).Count(&n).Error
	return n, err
}
