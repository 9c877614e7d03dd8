package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"venue-orders-go/order"
)

// orderRecord 是一条持久化订单，payload 为订单的 JSON 编码。
type orderRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Ticket    string `gorm:"index;not null"`
	Seq       int    `gorm:"not null"`
	OrderID   int32  `gorm:"index"`
	OrderType string
	Action    string
	Payload   string `gorm:"not null"`
	CreatedAt time.Time
}

func (orderRecord) TableName() string { return "orders" }

// Storage 使用纯 Go SQLite 保存已构建的订单，按工单名分组。
type Storage struct {
	db *gorm.DB
}

// Open 打开（必要时创建）path 处的数据库并迁移表结构。
func Open(path string) (*Storage, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create DB directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&orderRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Storage{db: db}, nil
}

// SaveOrders replaces whatever was stored for ticket with orders.
func (s *Storage) SaveOrders(ticket string, orders []order.Order) error {
	records := make([]orderRecord, 0, len(orders))
	for i, o := range orders {
		payload, err := json.Marshal(o)
		if err != nil {
			return fmt.Errorf("encode order %d of %q: %w", o.OrderID, ticket, err)
		}
		records = append(records, orderRecord{
			Ticket:    ticket,
			Seq:       i,
			OrderID:   o.OrderID,
			OrderType: o.OrderType,
			Action:    o.Action,
			Payload:   string(payload),
		})
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket = ?", ticket).Delete(&orderRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}

// LoadOrders returns the orders of ticket in build order. A ticket that was
// never saved yields no orders and no error.
func (s *Storage) LoadOrders(ticket string) ([]order.Order, error) {
	var records []orderRecord
	if err := s.db.Where("ticket = ?", ticket).Order("seq").Find(&records).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	orders := make([]order.Order, 0, len(records))
	for _, r := range records {
		o, err := order.DecodeJSON[order.Order]([]byte(r.Payload))
		if err != nil {
			return nil, fmt.Errorf("ticket %q seq %d: %w", ticket, r.Seq, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// Tickets 返回所有已保存的工单名（排序）。
func (s *Storage) Tickets() ([]string, error) {
	var names []string
	err := s.db.Model(&orderRecord{}).Distinct("ticket").Order("ticket").Pluck("ticket", &names).Error
	return names, err
}

func (s *Storage) DeleteTicket(ticket string) error {
	return s.db.Where("ticket = ?", ticket).Delete(&orderRecord{}).Error
}

// Close 关闭底层连接
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
