package usecase

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/varun134127/serene-sale-spot/internal/config"
	"github.com/varun134127/serene-sale-spot/internal/domain/model"
	repo "github.com/varun134127/serene-sale-spot/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 24 * time.Hour

type AuthUsecase struct {
	cfg   config.Config
	users repo.UserRepository
}

func NewAuthUsecase(cfg config.Config, users repo.UserRepository) *AuthUsecase {
	return &AuthUsecase{cfg: cfg, users: users}
}

type UserDTO struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	GoogleID *string `json:"google_id,omitempty"`
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}

// Googleのuserinfoから受け取る値
type GoogleUserInput struct {
	GoogleID string
	Email    string
	Username string
}

// Login はemail+passwordでログインしてbearer tokenを返す。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "email and password required")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//Googleのみのユーザーはパスワードログイン不可
	if user.PasswordHash == "" {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := u.issueAccessToken(user)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return LoginOutput{
		AccessToken: token,
		User:        toUserDTO(user),
	}, nil
}

// GoogleLogin はGoogle userinfoでfind-or-createしてbearer tokenを返す。
// 既存emailユーザーにはgoogle_idを紐付ける。
func (u *AuthUsecase) GoogleLogin(ctx context.Context, in GoogleUserInput) (LoginOutput, error) {
	if in.GoogleID == "" || in.Email == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "invalid google profile")
	}

	user, err := u.users.FindByGoogleID(ctx, in.GoogleID)
	if err != nil && err != repo.ErrNotFound {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err == repo.ErrNotFound {
		//emailで既存ユーザーを探して紐付け
		user, err = u.users.FindByEmail(ctx, in.Email)
		if err == nil {
			user.GoogleID = &in.GoogleID
			if uerr := u.users.Update(ctx, user); uerr != nil {
				return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
			}
		} else if err == repo.ErrNotFound {
			//初回ログインで作成
			username := in.Username
			if username == "" {
				username = in.Email
			}
			user = &model.User{
				Username: username,
				Email:    in.Email,
				GoogleID: &in.GoogleID,
			}
			if cerr := u.users.Create(ctx, user); cerr != nil {
				return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
			}
		} else {
			return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	token, err := u.issueAccessToken(user)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return LoginOutput{
		AccessToken: token,
		User:        toUserDTO(user),
	}, nil
}

// Me はbearer tokenの本人プロフィールを返す。
func (u *AuthUsecase) Me(ctx context.Context, userID int64) (UserDTO, error) {
	if userID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toUserDTO(user), nil
}

func (u *AuthUsecase) issueAccessToken(user *model.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(accessTokenTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(u.cfg.JWTSecret))
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		GoogleID: u.GoogleID,
	}
}
