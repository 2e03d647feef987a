package repository

import (
	"context"
	"errors"

	"github.com/varun134127/serene-sale-spot/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の取得だけを約束（ストアフロントは読み取り専用）。
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	// 起動時シード用
	Count(ctx context.Context) (int64, error)
	CreateBulk(ctx context.Context, products []model.Product) error
}
