package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Adapters never migrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&categoryRecord{},
		&productRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&userRecord{},
		&sessionRecord{},
	)
}

// Category and product schema mirrors the catalog Postgres adapter.
type categoryRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;size:100"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (categoryRecord) TableName() string { return "categories" }

type productRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	Name        string          `gorm:"column:name;size:200;index"`
	Description string          `gorm:"column:description"`
	ImageURL    string          `gorm:"column:image_url"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	CategoryID  int64           `gorm:"column:category_id;index;not null"`
	Category    categoryRecord  `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID          int64             `gorm:"primaryKey;column:id"`
	PlacementID string            `gorm:"column:placement_id;size:64;uniqueIndex;not null"`
	UserID      int64             `gorm:"column:user_id;index:idx_orders_user_created;not null"`
	TotalPrice  decimal.Decimal   `gorm:"column:total_price;type:numeric(12,2);not null"`
	CreatedAt   time.Time         `gorm:"column:created_at;index:idx_orders_user_created"`
	Items       []orderItemRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
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

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	Username     string    `gorm:"column:username;size:150;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the Postgres session store.
type sessionRecord struct {
	Token     string    `gorm:"primaryKey;column:token;size:64"`
	UserID    int64     `gorm:"column:user_id;index;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;index;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }
