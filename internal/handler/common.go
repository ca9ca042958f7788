// Package handler contains the HTTP layer: request binding and
// validation, translation of service errors into status codes, and
// JSON response shaping.  Handlers never touch SQL directly; they call
// into services and repositories.
package handler

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate on bound DTOs.
type CustomValidator struct {
	V *validator.Validate
}

// NewValidator returns a CustomValidator with struct tag validation
// enabled.
func NewValidator() *CustomValidator {
	return &CustomValidator{V: validator.New()}
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.V.Struct(i)
}

// getUserID extracts the user_id placed in the context by the JWT
// middleware and converts it to uint64.  The claim may arrive as any
// numeric type or a numeric string depending on how the token was
// decoded.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
