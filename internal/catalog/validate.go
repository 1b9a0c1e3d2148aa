package catalog

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/alexisbeaulieu97/stockroom/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// report fields by their filter name rather than the Go identifier
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("filter"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("page_size", func(fl validator.FieldLevel) bool {
			return IsPageSize(int(fl.Field().Int()))
		})

		validateInst = v
	})

	return validateInst
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		fe := ves[0]
		return apperrors.NewValidationError(fe.Field(), describeFieldError(fe), err)
	}

	return apperrors.NewValidationError("filter", err.Error(), err)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "numeric":
		return fmt.Sprintf("%q is not a number", fe.Value())
	case "ltefield":
		return fmt.Sprintf("must not exceed %s", fieldLabel(fe.Param()))
	case "page_size":
		return fmt.Sprintf("%v is not one of %v", fe.Value(), PageSizes)
	default:
		return fmt.Sprintf("failed validation for tag '%s'", fe.Tag())
	}
}

// fieldLabel maps a struct field referenced by a cross-field tag to its filter name.
func fieldLabel(goName string) string {
	switch goName {
	case "PriceMax":
		return "price_max"
	case "StockMax":
		return "stock_max"
	default:
		return strings.ToLower(goName)
	}
}
