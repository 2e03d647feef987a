package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/varun134127/serene-sale-spot/internal/domain/model"
	repo "github.com/varun134127/serene-sale-spot/internal/repository"
	"github.com/varun134127/serene-sale-spot/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Test: 商品一覧
func TestProductUsecase_ListProducts_Success(t *testing.T) {
	ctx := context.Background()

	pRepo := new(MockProductRepository)
	uc := usecase.NewProductUsecase(pRepo)

	items := []model.Product{
		{ID: 1, Name: "Laptop", Price: 50000},
		{ID: 2, Name: "Smartphone", Price: 20000},
	}
	pRepo.On("List", mock.Anything).Return(items, nil)

	out, err := uc.ListProducts(ctx)
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, "Laptop", out[0].Name)
	pRepo.AssertExpectations(t)
}

// Test: 存在しない商品は404
func TestProductUsecase_GetProductDetail_NotFound(t *testing.T) {
	ctx := context.Background()

	pRepo := new(MockProductRepository)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProductDetail(ctx, 99)
	assertErrContains(t, err, "not found")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

// Test: 不正なID
func TestProductUsecase_GetProductDetail_InvalidID(t *testing.T) {
	uc := usecase.NewProductUsecase(new(MockProductRepository))

	_, err := uc.GetProductDetail(context.Background(), 0)
	assertErrContains(t, err, "invalid product id")
}

// Test: 商品詳細
func TestProductUsecase_GetProductDetail_Success(t *testing.T) {
	ctx := context.Background()

	pRepo := new(MockProductRepository)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, Name: "Laptop", Price: 50000}, nil)

	p, err := uc.GetProductDetail(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(50000), p.Price)
}
