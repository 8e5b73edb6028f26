package mysql

import (
	"context"
	"errors"

	"storefront/domain/order"
	"storefront/infrastructure/persistence/mysql/po"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository MySQL/GORM implementation of order repository
// GORM usage specification: Association features are prohibited to maintain aggregate boundaries
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository Create order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// NextIdentity Generate new order ID
func (r *OrderRepository) NextIdentity() string {
	return "order-" + uuid.New().String()
}

// Save Save order (create or update)
// Note: Manually manage saving of orders and order items, do not use GORM associations
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	orderPO, itemPOs := po.FromOrderDomain(o)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(orderPO).Error; err != nil {
			return err
		}

		// Delete old order items (simple strategy: delete then insert)
		if err := tx.Where("order_id = ?", o.ID()).Delete(&po.OrderItemPO{}).Error; err != nil {
			return err
		}

		if len(itemPOs) > 0 {
			if err := tx.Create(&itemPOs).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByID Find order by ID
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	db := r.db.WithContext(ctx)
	var orderPO po.OrderPO

	result := db.First(&orderPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, result.Error
	}

	// Manually query order items (no Preload, keeps aggregate boundaries clear)
	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id = ?", id).Find(&itemPOs).Error; err != nil {
		return nil, err
	}

	return orderPO.ToDomain(itemPOs), nil
}

// FindAll Find every order, newest first
func (r *OrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	db := r.db.WithContext(ctx)
	var orderPOs []po.OrderPO

	if err := db.Order("created_at DESC").Find(&orderPOs).Error; err != nil {
		return nil, err
	}

	return r.loadItems(db, orderPOs)
}

// FindByUserID Find order list by user ID
func (r *OrderRepository) FindByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	db := r.db.WithContext(ctx)
	var orderPOs []po.OrderPO

	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}

	return r.loadItems(db, orderPOs)
}

// loadItems attaches line items to each order and rebuilds the aggregates
func (r *OrderRepository) loadItems(db *gorm.DB, orderPOs []po.OrderPO) ([]*order.Order, error) {
	orders := make([]*order.Order, len(orderPOs))
	for i, orderPO := range orderPOs {
		var itemPOs []po.OrderItemPO
		if err := db.Where("order_id = ?", orderPO.ID).Find(&itemPOs).Error; err != nil {
			return nil, err
		}
		orders[i] = orderPO.ToDomain(itemPOs)
	}
	return orders, nil
}

// AttachCheckoutSession Record the gateway session id on a pending order
func (r *OrderRepository) AttachCheckoutSession(ctx context.Context, orderID, sessionID string) error {
	result := r.db.WithContext(ctx).
		Model(&po.OrderPO{}).
		Where("id = ? AND payment_state = ?", orderID, string(order.PaymentPending)).
		Update("checkout_session_id", sessionID)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.classifyMiss(ctx, orderID)
	}

	return nil
}

// ConfirmPayment Guarded PENDING -> CONFIRMED transition.
// The WHERE clause carries the guard: with two concurrent verifications
// only one UPDATE matches, the other hits RowsAffected == 0.
func (r *OrderRepository) ConfirmPayment(ctx context.Context, orderID string) error {
	result := r.db.WithContext(ctx).
		Model(&po.OrderPO{}).
		Where("id = ? AND payment_state = ?", orderID, string(order.PaymentPending)).
		Update("payment_state", string(order.PaymentConfirmed))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.classifyMiss(ctx, orderID)
	}

	return nil
}

// classifyMiss distinguishes "row gone" from "row no longer pending"
// after a guarded update matched nothing.
func (r *OrderRepository) classifyMiss(ctx context.Context, orderID string) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&po.OrderPO{}).
		Where("id = ?", orderID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return order.NewOrderNotFoundError(orderID)
	}
	return order.NewOrderAlreadyResolvedError(orderID)
}

// UpdateStatus Overwrite the fulfillment status
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID string, status order.Status) error {
	result := r.db.WithContext(ctx).
		Model(&po.OrderPO{}).
		Where("id = ?", orderID).
		Update("status", string(status))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.NewOrderNotFoundError(orderID)
	}

	return nil
}

// Remove Delete order and line items (discarded checkout attempt)
func (r *OrderRepository) Remove(ctx context.Context, orderID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&po.OrderItemPO{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", orderID).Delete(&po.OrderPO{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return order.NewOrderNotFoundError(orderID)
		}

		return nil
	})
}

// Compile-time interface implementation check
var _ order.Repository = (*OrderRepository)(nil)
