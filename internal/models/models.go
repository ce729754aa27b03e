package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	Email        string `gorm:"index"                    json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey"      json:"id"`
	Name        string    `gorm:"unique;not null" json:"name"`
	Slug        string    `gorm:"unique;not null" json:"slug"`
	Description string    `json:"description"`
	IsActive    bool      `gorm:"default:true"    json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Vendor struct {
	ID        uint         `gorm:"primaryKey"           json:"id"`
	UserID    uint         `gorm:"uniqueIndex;not null" json:"user_id"`
	ShopName  string       `gorm:"not null"             json:"shop_name"`
	Slug      string       `gorm:"unique;not null"      json:"slug"`
	OwnerName string       `gorm:"not null"             json:"owner_name"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Address   string       `json:"address"`
	City      string       `json:"city"`
	State     string       `json:"state"`
	// Comma separated 6-digit pincodes the shop delivers to.
	Pincodes  string       `json:"pincodes"`
	Status    VendorStatus `gorm:"not null;default:pending" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type VendorStatus string

const (
	VendorPending  VendorStatus = "pending"
	VendorApproved VendorStatus = "approved"
	VendorRejected VendorStatus = "rejected"
)

func (v *Vendor) IsApproved() bool { return v.Status == VendorApproved }

// Prices are stored as int64 minor units (paise).
type Product struct {
	ID                uint      `gorm:"primaryKey"      json:"id"`
	VendorID          uint      `gorm:"index;not null"  json:"vendor_id"`
	CategoryID        uint      `gorm:"index;not null"  json:"category_id"`
	Name              string    `gorm:"not null"        json:"name"`
	Slug              string    `gorm:"unique;not null" json:"slug"`
	Description       string    `json:"description"`
	Price             int64     `gorm:"not null"        json:"price"`
	DiscountPrice     int64     `json:"discount_price"`
	Quantity          int       `gorm:"default:0"       json:"quantity"`
	LowStockThreshold int       `gorm:"default:10"      json:"low_stock_threshold"`
	Unit              string    `gorm:"default:piece"   json:"unit"`
	Image             string    `json:"image"`
	IsAvailable       bool      `gorm:"default:true"    json:"is_available"`
	IsActive          bool      `gorm:"default:true"    json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DisplayPrice returns the discount price when one is set.
func (p *Product) DisplayPrice() int64 {
	if p.DiscountPrice > 0 && p.DiscountPrice < p.Price {
		return p.DiscountPrice
	}
	return p.Price
}

func (p *Product) IsLowStock() bool {
	return p.Quantity > 0 && p.Quantity <= p.LowStockThreshold
}

type CartItem struct {
	ID        uint `gorm:"primaryKey"                 json:"id"`
	UserID    uint `gorm:"index;not null"             json:"user_id"`
	ProductID uint `gorm:"not null"                   json:"product_id"`
	Quantity  uint `gorm:"default:1;check:quantity>0" json:"quantity"`
}

// Order is an immutable header: fulfillment status lives on the items.
type Order struct {
	ID              uint      `gorm:"primaryKey"      json:"id"`
	Number          string    `gorm:"unique;not null" json:"number"`
	UserID          uint      `gorm:"index;not null"  json:"user_id"`
	TotalAmount     int64     `gorm:"not null"        json:"total_amount"`
	PaymentMethod   string    `gorm:"not null"        json:"payment_method"`
	CustomerName    string    `gorm:"not null"        json:"customer_name"`
	CustomerPhone   string    `gorm:"not null"        json:"customer_phone"`
	DeliveryAddress string    `gorm:"not null"        json:"delivery_address"`
	CreatedAt       time.Time `json:"created_at"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey"     json:"id"`
	OrderID   uint            `gorm:"index;not null" json:"order_id"`
	ProductID uint            `gorm:"not null"       json:"product_id"`
	// VendorID is copied from the product at checkout so later product
	// reassignment never changes who fulfills the line.
	VendorID  uint            `gorm:"index;not null" json:"vendor_id"`
	Quantity  uint            `gorm:"not null"       json:"quantity"`
	// UnitPrice is the display price at order time, never re-read live.
	UnitPrice int64           `gorm:"not null"       json:"unit_price"`
	Status    OrderItemStatus `gorm:"not null;default:placed" json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (i *OrderItem) LineTotal() int64 { return int64(i.Quantity) * i.UnitPrice }

type OrderItemStatus string

const (
	StatusPlaced         OrderItemStatus = "placed"
	StatusConfirmed      OrderItemStatus = "confirmed"
	StatusPreparing      OrderItemStatus = "preparing"
	StatusOutForDelivery OrderItemStatus = "out_for_delivery"
	StatusDelivered      OrderItemStatus = "delivered"
	StatusCancelled      OrderItemStatus = "cancelled"
)

// statusTransitions is the full fulfillment state machine: the linear chain
// placed -> confirmed -> preparing -> out_for_delivery -> delivered, with
// cancelled reachable from every non-terminal state.
var statusTransitions = map[OrderItemStatus][]OrderItemStatus{
	StatusPlaced:         {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

func (s OrderItemStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

func (s OrderItemStatus) CanTransitionTo(next OrderItemStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderItemStatus) Terminal() bool { return len(statusTransitions[s]) == 0 }

var PaymentMethods = []string{"cod", "online", "upi", "card"}

func ValidPaymentMethod(m string) bool {
	for _, allowed := range PaymentMethods {
		if allowed == m {
			return true
		}
	}
	return false
}
