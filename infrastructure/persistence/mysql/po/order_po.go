package po

import (
	"encoding/json"
	"time"

	"storefront/domain/order"
)

// OrderPO Order persistence object.
// Note: mapping only, no business logic, no GORM associations.
type OrderPO struct {
	ID                string    `gorm:"primaryKey;size:64"`
	UserID            string    `gorm:"size:64;index;not null"` // id reference only, no association
	Amount            float64   `gorm:"not null"`
	Address           string    `gorm:"type:json"` // opaque blob, stored verbatim
	PaymentMethod     string    `gorm:"size:20;not null"`
	PaymentState      string    `gorm:"size:20;not null;index"`
	CheckoutSessionID string    `gorm:"size:128"`
	Status            string    `gorm:"size:32;not null"`
	PlacedAt          string    `gorm:"size:32;not null"` // display timestamp, fixed at creation
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO Order line item persistence object
type OrderItemPO struct {
	ID       uint    `gorm:"primaryKey;autoIncrement"`
	OrderID  string  `gorm:"size:64;index;not null"`
	Name     string  `gorm:"size:255;not null"`
	Price    float64 `gorm:"not null"`
	Quantity int     `gorm:"not null"`
}

// TableName Specify table name
func (OrderItemPO) TableName() string {
	return "order_items"
}

// FromOrderDomain converts the aggregate into persistence objects.
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderItemPO) {
	orderPO := &OrderPO{
		ID:                o.ID(),
		UserID:            o.UserID(),
		Amount:            o.Amount(),
		Address:           string(o.Address()),
		PaymentMethod:     o.PaymentMethod(),
		PaymentState:      string(o.PaymentState()),
		CheckoutSessionID: o.CheckoutSessionID(),
		Status:            string(o.Status()),
		PlacedAt:          o.PlacedAt(),
	}

	items := o.Items()
	itemPOs := make([]OrderItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = OrderItemPO{
			OrderID:  o.ID(),
			Name:     item.Name(),
			Price:    item.Price(),
			Quantity: item.Quantity(),
		}
	}

	return orderPO, itemPOs
}

// ToDomain reconstructs the aggregate from persistence objects.
func (po *OrderPO) ToDomain(itemPOs []OrderItemPO) *order.Order {
	items := make([]order.ItemDTO, len(itemPOs))
	for i, item := range itemPOs {
		items[i] = order.ItemDTO{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:                po.ID,
		UserID:            po.UserID,
		Items:             items,
		Amount:            po.Amount,
		Address:           json.RawMessage(po.Address),
		PaymentMethod:     po.PaymentMethod,
		PaymentState:      order.PaymentState(po.PaymentState),
		CheckoutSessionID: po.CheckoutSessionID,
		Status:            order.Status(po.Status),
		PlacedAt:          po.PlacedAt,
	})
}
