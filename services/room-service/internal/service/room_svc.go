package service

import (
	"context"
	"fmt"

	"github.com/Selma23042/hotel-management-systeme/services/room-service/internal/domain"
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	ByID(ctx context.Context, id string) (*domain.Room, error)
	ByNumber(ctx context.Context, number string) (*domain.Room, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	All(ctx context.Context) ([]domain.Room, error)
	ByStatus(ctx context.Context, status domain.RoomStatus) ([]domain.Room, error)
	ByType(ctx context.Context, t domain.RoomType) ([]domain.Room, error)
	AvailableByType(ctx context.Context, t domain.RoomType) ([]domain.Room, error)
	ByPriceRange(ctx context.Context, min, max float64) ([]domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	UpdateStatus(ctx context.Context, id string, status domain.RoomStatus) (*domain.Room, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status domain.RoomStatus) (int64, error)
}

type RoomSvc struct {
	repo RoomRepository
}

func NewRoomSvc(r RoomRepository) *RoomSvc {
	return &RoomSvc{repo: r}
}

func (s *RoomSvc) Create(ctx context.Context, in domain.Room) (*domain.Room, error) {
	if in.RoomNumber == "" || in.PricePerNight <= 0 || in.Capacity <= 0 {
		return nil, fmt.Errorf("%w: room number, price and capacity are required", domain.ErrInvalidRoom)
	}
	if in.Status == "" {
		in.Status = domain.RoomAvailable
	}
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidRoom, in.Status)
	}
	exists, err := s.repo.ExistsByNumber(ctx, in.RoomNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrRoomExists, in.RoomNumber)
	}
	if err := s.repo.Create(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *RoomSvc) Get(ctx context.Context, id string) (*domain.Room, error) {
	return s.repo.ByID(ctx, id)
}

func (s *RoomSvc) GetByNumber(ctx context.Context, number string) (*domain.Room, error) {
	return s.repo.ByNumber(ctx, number)
}

func (s *RoomSvc) List(ctx context.Context) ([]domain.Room, error) {
	return s.repo.All(ctx)
}

func (s *RoomSvc) ListByStatus(ctx context.Context, status domain.RoomStatus) ([]domain.Room, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidRoom, status)
	}
	return s.repo.ByStatus(ctx, status)
}

func (s *RoomSvc) ListByType(ctx context.Context, t domain.RoomType) ([]domain.Room, error) {
	return s.repo.ByType(ctx, t)
}

func (s *RoomSvc) ListAvailableByType(ctx context.Context, t domain.RoomType) ([]domain.Room, error) {
	return s.repo.AvailableByType(ctx, t)
}

func (s *RoomSvc) ListByPriceRange(ctx context.Context, min, max float64) ([]domain.Room, error) {
	return s.repo.ByPriceRange(ctx, min, max)
}

func (s *RoomSvc) Update(ctx context.Context, in domain.Room) (*domain.Room, error) {
	current, err := s.repo.ByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if in.RoomNumber != current.RoomNumber {
		exists, err := s.repo.ExistsByNumber(ctx, in.RoomNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: %s", domain.ErrRoomExists, in.RoomNumber)
		}
	}
	if err := s.repo.Update(ctx, &in); err != nil {
		return nil, err
	}
	return s.repo.ByID(ctx, in.ID)
}

func (s *RoomSvc) UpdateStatus(ctx context.Context, id string, status domain.RoomStatus) (*domain.Room, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidRoom, status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *RoomSvc) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *RoomSvc) CountAvailable(ctx context.Context) (int64, error) {
	return s.repo.CountByStatus(ctx, domain.RoomAvailable)
}
