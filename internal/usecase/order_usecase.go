package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/varun134127/serene-sale-spot/internal/domain/model"
	"github.com/varun134127/serene-sale-spot/internal/payment"
	repo "github.com/varun134127/serene-sale-spot/internal/repository"

	"github.com/google/uuid"
)

// usecaseが決済ゲートウェイに求める約束
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, receipt string) (payment.CheckoutOrder, error)
	KeyID() string
	CanVerify() bool
	VerifySignature(orderID string, paymentID string, signature string) bool
}

type OrderUsecase struct {
	tx      repo.TransactionManager
	gateway PaymentGateway
}

func NewOrderUsecase(tx repo.TransactionManager, gateway PaymentGateway) *OrderUsecase {
	return &OrderUsecase{tx: tx, gateway: gateway}
}

type CreateOrderInput struct {
	GatewayOrderID string
}

type VerifyPaymentInput struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
}

// hosted checkoutに渡す値
type CheckoutOutput struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type OrderOutput struct {
	ID             int64             `json:"id"`
	UserID         int64             `json:"user_id"`
	TotalAmount    int64             `json:"total_amount"`
	GatewayOrderID string            `json:"gateway_order_id"`
	Status         string            `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	Items          []OrderItemOutput `json:"items"`
}

// Checkout はカート合計でゲートウェイ側の注文を作る。
// 返ったorder_idをフロントがcheckout overlayに渡し、そのまま POST /orders に戻してくる。
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64) (CheckoutOutput, error) {
	if userID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var total int64 = 0

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, err := r.CartItems().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(items) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		for _, it := range items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "invalid cart")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			total += p.Price * it.Quantity
		}
		return nil
	})
	if err != nil {
		return CheckoutOutput{}, err
	}

	gw, err := u.gateway.CreateOrder(ctx, total, uuid.NewString())
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadGateway, "gateway error")
	}

	return CheckoutOutput{
		OrderID:  gw.ID,
		Amount:   gw.Amount,
		Currency: gw.Currency,
		KeyID:    u.gateway.KeyID(),
	}, nil
}

// CreateOrder はカートをPENDING注文に変換してカートをクリアする。
// 全体を1トランザクションで行う。gateway_order_idはuniqueなので同じIDでは2回作れない。
func (u *OrderUsecase) CreateOrder(ctx context.Context, userID int64, in CreateOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	gatewayOrderID := strings.TrimSpace(in.GatewayOrderID)
	if gatewayOrderID == "" || len(gatewayOrderID) > 255 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid gateway_order_id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カート明細取得
		cartItems, err := r.CartItems().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		//この時点の単価でスナップショット
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		products := make([]model.Product, 0, len(cartItems))
		var total int64 = 0

		now := time.Now()
		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "invalid cart")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID: ci.ProductID,
				Quantity:  ci.Quantity,
				Price:     p.Price,
				CreatedAt: now,
			})
			products = append(products, p)

			total += p.Price * ci.Quantity
		}

		//注文作成
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:         userID,
			TotalAmount:    total,
			GatewayOrderID: gatewayOrderID,
			Status:         model.OrderStatusPending,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			//unique違反（同じgateway_order_idの二重送信）
			return NewHTTPError(http.StatusBadRequest, "duplicate order")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートをクリア（この時点では支払い未確認）
		if err := r.CartItems().DeleteAllByUserID(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := model.Order{
			ID:             orderID,
			UserID:         userID,
			TotalAmount:    total,
			GatewayOrderID: gatewayOrderID,
			Status:         model.OrderStatusPending,
			CreatedAt:      now,
		}
		out = toOrderOutput(created, orderItems, products)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// VerifyPayment は本人の注文をPAIDにする。
// payment_id + signatureが来ていてシークレットがあればHMAC検証、無ければ従来どおり無条件でPAID。
func (u *OrderUsecase) VerifyPayment(ctx context.Context, userID int64, in VerifyPaymentInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	gatewayOrderID := strings.TrimSpace(in.GatewayOrderID)
	if gatewayOrderID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid gateway_order_id")
	}

	if in.PaymentID != "" && in.Signature != "" && u.gateway.CanVerify() {
		if !u.gateway.VerifySignature(gatewayOrderID, in.PaymentID, in.Signature) {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid signature")
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByGatewayOrderID(ctx, userID, gatewayOrderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Orders().UpdateStatus(ctx, o.ID, model.OrderStatusPaid); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		o.Status = model.OrderStatusPaid

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items, u.lookupProducts(ctx, r, items))
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ListMyOrders は本人の注文を新しい順で返す（明細と商品スナップショット付き）。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items, u.lookupProducts(ctx, r, items)))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// 明細に対応する商品を引く（消えた商品は空のまま）
func (u *OrderUsecase) lookupProducts(ctx context.Context, r repo.TxRepos, items []model.OrderItem) []model.Product {
	products := make([]model.Product, len(items))
	for i, it := range items {
		p, err := r.Products().FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}
		products[i] = p
	}
	return products
}

func toOrderOutput(o model.Order, items []model.OrderItem, products []model.Product) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for i, it := range items {
		var name, image string
		if i < len(products) {
			name = products[i].Name
			image = products[i].Image
		}
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      name,
			Image:     image,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:             o.ID,
		UserID:         o.UserID,
		TotalAmount:    o.TotalAmount,
		GatewayOrderID: o.GatewayOrderID,
		Status:         string(o.Status),
		CreatedAt:      o.CreatedAt,
		Items:          outItems,
	}
}
