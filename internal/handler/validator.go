package handler

import (
	"github.com/go-playground/validator/v10"
)

// echo.Validatorの実装。リクエストDTOのvalidateタグを検証する。
type RequestValidator struct {
	v *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{v: validator.New()}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}
