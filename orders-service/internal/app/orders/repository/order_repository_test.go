package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gamestore/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB SQLite в памяти; таблица games создается здесь, в проде ее мигрирует каталог
func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&entity.Game{}, &entity.Order{}, &entity.OrderGame{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

type OrderRepositoryTestSuite struct {
	suite.Suite
	db         *gorm.DB
	repos      Repositories
	ctx        context.Context
	customerID uuid.UUID
	game       entity.Game
}

func TestOrderRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryTestSuite))
}

func (s *OrderRepositoryTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.repos = NewRepositories(s.db)
	s.ctx = context.Background()
	s.customerID = uuid.New()

	s.game = entity.Game{ID: uuid.New(), Key: "witcher-3", Name: "Witcher 3", Price: 19.99, UnitInStock: 5}
	s.Require().NoError(s.db.Create(&s.game).Error)
}

func (s *OrderRepositoryTestSuite) newOrder(status entity.OrderStatus, date time.Time) *entity.Order {
	order := &entity.Order{ID: uuid.New(), CustomerID: s.customerID, Date: date, Status: status}
	s.Require().NoError(s.repos.Orders.Create(s.ctx, order))
	return order
}

func (s *OrderRepositoryTestSuite) TestGetOpenByCustomer_EarliestWins() {
	// Arrange
	now := time.Now().UTC()
	s.newOrder(entity.OrderStatusPaid, now.Add(-3*time.Hour))
	first := s.newOrder(entity.OrderStatusOpen, now.Add(-2*time.Hour))
	s.newOrder(entity.OrderStatusOpen, now.Add(-time.Hour))

	// Act
	order, err := s.repos.Orders.GetOpenByCustomer(s.ctx, s.customerID)

	// Assert
	s.Require().NoError(err)
	s.Equal(first.ID, order.ID)
}

func (s *OrderRepositoryTestSuite) TestGetOpenByCustomer_NotFound() {
	_, err := s.repos.Orders.GetOpenByCustomer(s.ctx, uuid.New())

	s.ErrorIs(err, ErrOrderNotFound)
}

func (s *OrderRepositoryTestSuite) TestGetByID_PreloadsLines() {
	order := s.newOrder(entity.OrderStatusOpen, time.Now().UTC())
	line := &entity.OrderGame{ID: uuid.New(), OrderID: order.ID, GameID: s.game.ID, Price: 19.99, Quantity: 2}
	s.Require().NoError(s.repos.OrderGames.Create(s.ctx, line))

	got, err := s.repos.Orders.GetByID(s.ctx, order.ID)

	s.Require().NoError(err)
	s.Require().Len(got.Items, 1)
	s.Equal(2, got.Items[0].Quantity)
	s.InDelta(39.98, got.Total(), 0.001)
}

func (s *OrderRepositoryTestSuite) TestGetByStatuses() {
	now := time.Now().UTC()
	s.newOrder(entity.OrderStatusOpen, now)
	s.newOrder(entity.OrderStatusPaid, now.Add(-time.Hour))
	s.newOrder(entity.OrderStatusCancelled, now.Add(-2*time.Hour))

	orders, err := s.repos.Orders.GetByStatuses(s.ctx, entity.OrderStatusPaid, entity.OrderStatusCancelled)

	s.Require().NoError(err)
	s.Require().Len(orders, 2)
	s.Equal(entity.OrderStatusPaid, orders[0].Status)
}

func (s *OrderRepositoryTestSuite) TestUpdateStatus_Conditional() {
	order := s.newOrder(entity.OrderStatusOpen, time.Now().UTC())

	s.Require().NoError(s.repos.Orders.UpdateStatus(s.ctx, order.ID, entity.OrderStatusOpen, entity.OrderStatusPaid))
	err := s.repos.Orders.UpdateStatus(s.ctx, order.ID, entity.OrderStatusOpen, entity.OrderStatusCancelled)

	s.ErrorIs(err, ErrStatusChanged)
	got, err := s.repos.Orders.GetByID(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(entity.OrderStatusPaid, got.Status)
}

func (s *OrderRepositoryTestSuite) TestOrderGame_UniquePerOrderAndGame() {
	order := s.newOrder(entity.OrderStatusOpen, time.Now().UTC())
	s.Require().NoError(s.repos.OrderGames.Create(s.ctx, &entity.OrderGame{ID: uuid.New(), OrderID: order.ID, GameID: s.game.ID, Quantity: 1}))

	err := s.repos.OrderGames.Create(s.ctx, &entity.OrderGame{ID: uuid.New(), OrderID: order.ID, GameID: s.game.ID, Quantity: 1})

	s.ErrorIs(err, ErrDuplicateKey)
}

func (s *OrderRepositoryTestSuite) TestOrderGame_UpdateAndDelete() {
	order := s.newOrder(entity.OrderStatusOpen, time.Now().UTC())
	line := &entity.OrderGame{ID: uuid.New(), OrderID: order.ID, GameID: s.game.ID, Quantity: 3}
	s.Require().NoError(s.repos.OrderGames.Create(s.ctx, line))

	s.Require().NoError(s.repos.OrderGames.UpdateQuantity(s.ctx, line.ID, 0))
	got, err := s.repos.OrderGames.GetByOrderAndGame(s.ctx, order.ID, s.game.ID)
	s.Require().NoError(err)
	s.Equal(0, got.Quantity)

	s.Require().NoError(s.repos.OrderGames.Delete(s.ctx, line.ID))
	s.ErrorIs(s.repos.OrderGames.Delete(s.ctx, line.ID), ErrOrderGameNotFound)
	_, err = s.repos.OrderGames.GetByID(s.ctx, line.ID)
	s.ErrorIs(err, ErrOrderGameNotFound)
}

func (s *OrderRepositoryTestSuite) TestDecrementStock() {
	s.Require().NoError(s.repos.Games.DecrementStock(s.ctx, s.game.ID, 5))

	err := s.repos.Games.DecrementStock(s.ctx, s.game.ID, 1)

	s.ErrorIs(err, ErrStockChanged)
	game, err := s.repos.Games.GetByKey(s.ctx, "witcher-3")
	s.Require().NoError(err)
	s.Equal(0, game.UnitInStock)
}

func (s *OrderRepositoryTestSuite) TestGameNotFound() {
	_, err := s.repos.Games.GetByID(s.ctx, uuid.New())
	s.ErrorIs(err, ErrGameNotFound)

	_, err = s.repos.Games.GetByKey(s.ctx, "ghost")
	s.ErrorIs(err, ErrGameNotFound)
}

func (s *OrderRepositoryTestSuite) TestUnitOfWork_RollsBackOnError() {
	// Arrange
	uow := NewUnitOfWork(s.db)
	order := &entity.Order{ID: uuid.New(), CustomerID: s.customerID, Date: time.Now().UTC(), Status: entity.OrderStatusOpen}
	boom := errors.New("boom")

	// Act
	err := uow.Do(s.ctx, func(repos Repositories) error {
		if err := repos.Orders.Create(s.ctx, order); err != nil {
			return err
		}
		if err := repos.Games.DecrementStock(s.ctx, s.game.ID, 2); err != nil {
			return err
		}
		return boom
	})

	// Assert
	s.ErrorIs(err, boom)
	_, err = s.repos.Orders.GetByID(s.ctx, order.ID)
	s.ErrorIs(err, ErrOrderNotFound)
	game, err := s.repos.Games.GetByID(s.ctx, s.game.ID)
	s.Require().NoError(err)
	s.Equal(5, game.UnitInStock)
}
