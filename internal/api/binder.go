package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/certenergy/internal/pkg/constants"
)

type requestValidator struct {
	validate *validator.Validate
}

func NewValidator() echo.Validator {
	return &requestValidator{validate: validator.New()}
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return constants.NewCodedError(http.StatusBadRequest,
				fmt.Errorf("invalid field %s: failed on %q", verrs[0].Namespace(), verrs[0].Tag()))
		}
		return constants.NewCodedError(http.StatusBadRequest, err)
	}
	return nil
}

type requestBinder struct {
	echo.DefaultBinder
}

func NewBinder() echo.Binder {
	return &requestBinder{}
}

func (b *requestBinder) Bind(i interface{}, c echo.Context) error {
	if err := b.DefaultBinder.Bind(i, c); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code != http.StatusBadRequest {
			return err
		}
		return constants.NewCodedError(http.StatusBadRequest, fmt.Errorf("bind request: %w", err))
	}
	return nil
}

type jsonSerializer struct {
	api sonic.API
}

func NewJSONSerializer() echo.JSONSerializer {
	return &jsonSerializer{api: sonic.ConfigStd}
}

func (s *jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := s.api.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (s *jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := s.api.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed JSON body").SetInternal(err)
	}
	return nil
}
