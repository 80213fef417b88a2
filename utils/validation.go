// utils/validation.go
package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TranslateBindingError turns gin binding failures into readable
// field-level messages instead of validator's raw struct paths.
func TranslateBindingError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", fe.Field())
		case "min":
			msg = fmt.Sprintf("%s must have at least %s item(s)", fe.Field(), fe.Param())
		case "gt":
			msg = fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
		case "oneof":
			msg = fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
		default:
			msg = fe.Error()
		}
		messages = append(messages, msg)
	}
	return strings.Join(messages, "; ")
}
