package po

import (
	"encoding/json"
	"time"

	"storefront/domain/user"
)

// UserPO User persistence object.
// The cart is stored as a JSON column: the workflow only ever reads it
// whole and replaces it whole, so a relational layout buys nothing.
type UserPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"size:100;not null"`
	Email     string    `gorm:"size:255;uniqueIndex;not null"`
	CartData  string    `gorm:"type:json"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (UserPO) TableName() string {
	return "users"
}

// FromUserDomain converts the aggregate into a persistence object.
func FromUserDomain(u *user.User) (*UserPO, error) {
	cartJSON, err := json.Marshal(u.CartData())
	if err != nil {
		return nil, err
	}

	return &UserPO{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		CartData:  string(cartJSON),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}, nil
}

// ToDomain reconstructs the aggregate from the persistence object.
func (po *UserPO) ToDomain() (*user.User, error) {
	cart := make(map[string]int)
	if po.CartData != "" {
		if err := json.Unmarshal([]byte(po.CartData), &cart); err != nil {
			return nil, err
		}
	}

	return user.RebuildFromDTO(user.ReconstructionDTO{
		ID:        po.ID,
		Name:      po.Name,
		Email:     po.Email,
		CartData:  cart,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}), nil
}
