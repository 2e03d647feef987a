package model

import "time"

// パスワード登録ユーザーとGoogleログインユーザーを1テーブルで持つ。
// Googleのみのユーザーは password_hash が空。
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"type:varchar(255);not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	GoogleID     *string   `gorm:"type:varchar(255);uniqueIndex" json:"google_id,omitempty"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
