package handler

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/varun134127/serene-sale-spot/internal/config"
	"github.com/varun134127/serene-sale-spot/internal/middleware"
	"github.com/varun134127/serene-sale-spot/internal/usecase"

	"github.com/labstack/echo/v4"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// /authのHTTP。password loginとGoogle OAuthの両方。
type AuthHandler struct {
	uc    *usecase.AuthUsecase
	cfg   config.Config
	oauth *oauth2.Config
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		uc:  uc,
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/auth/login", h.login)
	e.GET("/auth/google", h.googleRedirect)
	e.GET("/auth/google/callback", h.googleCallback)

	//meだけbearer必須
	e.GET("/auth/me", h.me, middleware.AuthJWT(cfg))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email and password required"})
	}

	out, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// Googleの同意画面へリダイレクト。stateはcookieに残してcallbackで照合する。
func (h *AuthHandler) googleRedirect(c echo.Context) error {
	state, err := generateState()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	c.SetCookie(&http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(10 * time.Minute),
	})

	return c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL(state))
}

// Googleのuserinfoレスポンス
type googleUserinfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// callback: code交換→userinfo取得→find-or-create→フロントへtoken付きリダイレクト。
func (h *AuthHandler) googleCallback(c echo.Context) error {
	//state照合
	stateCookie, err := c.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != c.QueryParam("state") {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid state"})
	}

	code := c.QueryParam("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "code required"})
	}

	ctx := c.Request().Context()

	tok, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "code exchange failed"})
	}

	//userinfo取得
	res, err := h.oauth.Client(ctx, tok).Get(googleUserinfoURL)
	if err != nil {
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "userinfo fetch failed"})
	}
	defer res.Body.Close()

	var info googleUserinfo
	if err := json.NewDecoder(res.Body).Decode(&info); err != nil {
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "userinfo fetch failed"})
	}

	out, err := h.uc.GoogleLogin(ctx, usecase.GoogleUserInput{
		GoogleID: info.ID,
		Email:    info.Email,
		Username: info.Name,
	})
	if err != nil {
		return writeError(c, err)
	}

	//フロントにtokenとuserを渡してリダイレクト
	userJSON, err := json.Marshal(out.User)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	redirect := h.cfg.FEURL + "/auth-callback?token=" + url.QueryEscape(out.AccessToken) +
		"&user=" + url.QueryEscape(string(userJSON))

	return c.Redirect(http.StatusFound, redirect)
}

func (h *AuthHandler) me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// AuthJWTが入れたuser_idを取り出す
func getUserIDFromContext(c echo.Context) (int64, bool) {
	raw := c.Get(middleware.CtxUserIDKey)
	userID, ok := raw.(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}

// OAuth state用のランダム文字列
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
