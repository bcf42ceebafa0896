package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindForm binds an urlencoded form into out. On validation failure it
// returns the per-field messages keyed by the form field name, ready for a
// same-page re-render.
func BindForm(ctx *gin.Context, out interface{}) (map[string]string, bool) {
	err := ctx.ShouldBind(out)

	if err == nil {
		return nil, true
	}

	return parseFormError(err, out), false
}

func parseFormError(err error, out interface{}) map[string]string {
	fields := map[string]string{}

	var validatorErrs validator.ValidationErrors

	if errors.As(err, &validatorErrs) {
		rootType := baseStructType(out)

		for _, fe := range validatorErrs {
			name := formNameFromField(rootType, fe.StructField())
			fields[name] = validationMessage(fe.Tag(), fe.Param())
		}
		return fields
	}

	// malformed body, wrong content type, oversized request
	fields["_form"] = "Nie udało się odczytać formularza. Spróbuj ponownie."
	return fields
}

func baseStructType(v interface{}) reflect.Type {
	t := reflect.TypeOf(v)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t != nil && t.Kind() == reflect.Struct {
		return t
	}

	return nil
}

func formNameFromField(rootType reflect.Type, structField string) string {
	if rootType == nil {
		return strings.ToLower(structField)
	}

	sf, ok := rootType.FieldByName(structField)
	if !ok {
		return strings.ToLower(structField)
	}

	tag := sf.Tag.Get("form")
	if tag == "" {
		return strings.ToLower(structField)
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return strings.ToLower(structField)
	}

	return name
}

// emptyForm keeps the value-echoing template fields defined on a first GET.
func emptyForm() gin.H {
	return gin.H{
		"Name":    "",
		"Email":   "",
		"Phone":   "",
		"Message": "",
	}
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "To pole jest wymagane"
	case "email":
		return "Podaj poprawny adres e-mail"
	case "min":
		return "Wpisz co najmniej " + param + " znaki"
	case "max":
		return "Wpisz najwyżej " + param + " znaków"
	default:
		return "Nieprawidłowa wartość"
	}
}
