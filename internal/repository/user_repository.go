package repository

import (
	"context"

	"github.com/varun134127/serene-sale-spot/internal/domain/model"
)

// ユーザーの保存・取得を約束。
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//Googleログインの紐付け用
	FindByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}
