package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"burger-palace-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormStore snapshots state into SQL tables
type GormStore struct {
	DB *gorm.DB
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
}

// OpenSQLite opens the pure-Go SQLite driver; ":memory:" gives a private database
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// NewGormStore migrates the snapshot tables
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	err := db.AutoMigrate(
		&models.User{},
		&models.CartLineRecord{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.TableReservation{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &GormStore{DB: db}, nil
}

// SaveCart replaces the session's rows with lines
func (s *GormStore) SaveCart(ctx context.Context, sessionID string, lines []models.CartLine) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&models.CartLineRecord{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		records := make([]models.CartLineRecord, len(lines))
		for i, l := range lines {
			records[i] = models.CartLineRecord{
				SessionID:           sessionID,
				Position:            i,
				MenuItemID:          l.MenuItem.ID,
				Name:                l.MenuItem.Name,
				Price:               l.MenuItem.Price,
				Category:            l.MenuItem.Category,
				Quantity:            l.Quantity,
				SpecialInstructions: l.SpecialInstructions,
			}
		}
		return tx.Create(&records).Error
	})
}

func (s *GormStore) LoadCart(ctx context.Context, sessionID string) ([]models.CartLine, error) {
	var records []models.CartLineRecord
	err := s.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("position asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	lines := make([]models.CartLine, 0, len(records))
	for _, r := range records {
		lines = append(lines, models.CartLine{
			MenuItem: models.MenuItem{
				ID:       r.MenuItemID,
				Name:     r.Name,
				Price:    r.Price,
				Category: r.Category,
			},
			Quantity:            r.Quantity,
			SpecialInstructions: r.SpecialInstructions,
		})
	}
	return lines, nil
}

// CreateOrder inserts the order with its items and initial history
func (s *GormStore) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.DB.WithContext(ctx).Create(order).Error
}

func (s *GormStore) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus, history *models.OrderStatusHistory) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
			"status":     status,
			"updated_at": history.CreatedAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("order %s: %w", orderID, models.ErrNotFound)
		}
		return tx.Create(history).Error
	})
}

func (s *GormStore) LoadOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Order("created_at asc").
		Find(&orders).Error
	return orders, err
}

func (s *GormStore) CreateReservation(ctx context.Context, r *models.TableReservation) error {
	return s.DB.WithContext(ctx).Create(r).Error
}

func (s *GormStore) UpdateReservationStatus(ctx context.Context, id string, status models.ReservationStatus, updatedAt time.Time) error {
	res := s.DB.WithContext(ctx).Model(&models.TableReservation{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": updatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("reservation %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (s *GormStore) LoadReservations(ctx context.Context) ([]models.TableReservation, error) {
	var reservations []models.TableReservation
	err := s.DB.WithContext(ctx).Order("created_at asc").Find(&reservations).Error
	return reservations, err
}

func (s *GormStore) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GormUserRepository keeps accounts in the users table
type GormUserRepository struct {
	DB *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{DB: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GormUserRepository) first(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
