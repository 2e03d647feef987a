package model

import "time"

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusPaid    OrderStatus = "PAID"
)

// 注文。total_amountは作成時点のカート合計で、以後再計算しない。
// gateway_order_idは決済ゲートウェイ発行のID。uniqueなので同じIDで二重作成できない。
type Order struct {
	ID             int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64       `gorm:"not null;index" json:"user_id"`
	TotalAmount    int64       `gorm:"not null" json:"total_amount"`
	GatewayOrderID string      `gorm:"type:varchar(255);not null;uniqueIndex;column:gateway_order_id" json:"gateway_order_id"`
	Status         OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt      time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
