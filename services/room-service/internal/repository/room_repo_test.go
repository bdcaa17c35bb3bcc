package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Selma23042/hotel-management-systeme/services/room-service/internal/domain"
)

func newTestRepo(t *testing.T) *RoomRepo {
	t.Helper()
	// a named in-memory database keeps each test isolated across pooled connections
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := gdb.DB()
		_ = sqlDB.Close()
	})
	repo := NewRoomRepo(gdb)
	require.NoError(t, repo.Migrate())
	return repo
}

func seedRoom(t *testing.T, repo *RoomRepo, number string, rt domain.RoomType, status domain.RoomStatus, price float64) *domain.Room {
	t.Helper()
	room := &domain.Room{
		RoomNumber:    number,
		RoomType:      rt,
		Status:        status,
		PricePerNight: price,
		Floor:         1,
		Capacity:      2,
	}
	require.NoError(t, repo.Create(context.Background(), room))
	return room
}

func TestRoomRepoCreateAndFetch(t *testing.T) {
	repo := newTestRepo(t)
	room := seedRoom(t, repo, "101", domain.RoomSingle, domain.RoomAvailable, 100)

	assert.NotEmpty(t, room.ID)

	got, err := repo.ByID(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, "101", got.RoomNumber)

	got, err = repo.ByNumber(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, room.ID, got.ID)
}

func TestRoomRepoDuplicateNumber(t *testing.T) {
	repo := newTestRepo(t)
	seedRoom(t, repo, "101", domain.RoomSingle, domain.RoomAvailable, 100)

	exists, err := repo.ExistsByNumber(context.Background(), "101")
	require.NoError(t, err)
	assert.True(t, exists)

	err = repo.Create(context.Background(), &domain.Room{
		RoomNumber: "101", RoomType: domain.RoomDouble, Status: domain.RoomAvailable,
		PricePerNight: 150, Capacity: 2,
	})
	assert.Error(t, err) // unique index on room_number
}

func TestRoomRepoNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.ByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	err = repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestRoomRepoFilters(t *testing.T) {
	repo := newTestRepo(t)
	seedRoom(t, repo, "101", domain.RoomSingle, domain.RoomAvailable, 80)
	seedRoom(t, repo, "201", domain.RoomDouble, domain.RoomAvailable, 120)
	seedRoom(t, repo, "202", domain.RoomDouble, domain.RoomOccupied, 120)
	seedRoom(t, repo, "301", domain.RoomSuite, domain.RoomMaintenance, 300)

	byStatus, err := repo.ByStatus(context.Background(), domain.RoomAvailable)
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	byType, err := repo.ByType(context.Background(), domain.RoomDouble)
	require.NoError(t, err)
	assert.Len(t, byType, 2)

	available, err := repo.AvailableByType(context.Background(), domain.RoomDouble)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "201", available[0].RoomNumber)

	priced, err := repo.ByPriceRange(context.Background(), 100, 200)
	require.NoError(t, err)
	assert.Len(t, priced, 2)

	n, err := repo.CountByStatus(context.Background(), domain.RoomAvailable)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestRoomRepoUpdateStatus(t *testing.T) {
	repo := newTestRepo(t)
	room := seedRoom(t, repo, "101", domain.RoomSingle, domain.RoomAvailable, 100)

	updated, err := repo.UpdateStatus(context.Background(), room.ID, domain.RoomReserved)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomReserved, updated.Status)

	got, err := repo.ByID(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomReserved, got.Status)

	_, err = repo.UpdateStatus(context.Background(), "missing", domain.RoomReserved)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}
