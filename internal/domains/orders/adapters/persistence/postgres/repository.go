package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders and their items in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed order ledger. Caller manages DB lifecycle and schema.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID          int64             `gorm:"primaryKey;column:id"`
	PlacementID string            `gorm:"column:placement_id;size:64;uniqueIndex;not null"`
	UserID      int64             `gorm:"column:user_id;index:idx_orders_user_created;not null"`
	TotalPrice  decimal.Decimal   `gorm:"column:total_price;type:numeric(12,2);not null"`
	CreatedAt   time.Time         `gorm:"column:created_at;index:idx_orders_user_created"`
	Items       []orderItemRecord `gorm:"foreignKey:OrderID"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	OrderID     int64           `gorm:"column:order_id;index;not null"`
	ProductID   int64           `gorm:"column:product_id;not null"`
	ProductName string          `gorm:"column:product_name;size:200"`
	Quantity    int             `gorm:"column:quantity;not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Create writes the order row and all item rows in one transaction. An order
// whose placement id already exists is returned as stored, which makes
// workflow activity retries safe.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Omit("Items").
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "placement_id"}}, DoNothing: true}).
			Create(&record)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errAlreadyPlaced
		}
		for i := range record.Items {
			record.Items[i].OrderID = record.ID
		}
		return tx.Create(&record.Items).Error
	})
	if errors.Is(err, errAlreadyPlaced) {
		return r.getByPlacementID(ctx, order.PlacementID)
	}
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).Preload("Items", orderItemsByID).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByID).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

var errAlreadyPlaced = errors.New("order already placed")

func (r *Repository) getByPlacementID(ctx context.Context, placementID string) (*domain.Order, error) {
	var record orderRecord
	if err := r.db.WithContext(ctx).Preload("Items", orderItemsByID).First(&record, "placement_id = ?", placementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	rec := orderRecord{
		PlacementID: order.PlacementID,
		UserID:      order.UserID,
		TotalPrice:  order.TotalPrice,
		CreatedAt:   order.CreatedAt,
		Items:       make([]orderItemRecord, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		rec.Items = append(rec.Items, orderItemRecord{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return rec
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:          r.ID,
		PlacementID: r.PlacementID,
		UserID:      r.UserID,
		TotalPrice:  r.TotalPrice,
		CreatedAt:   r.CreatedAt.UTC(),
		Items:       make([]domain.Item, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		order.Items = append(order.Items, domain.Item{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return order
}
