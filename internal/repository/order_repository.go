package repository

import (
	"context"

	"github.com/varun134127/serene-sale-spot/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	// 本人の注文だけを返す（他人のgateway_order_idでは見つからない）
	FindByGatewayOrderID(ctx context.Context, userID int64, gatewayOrderID string) (model.Order, error)
	// 新しい順
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
