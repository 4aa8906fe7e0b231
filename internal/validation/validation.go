// Package validation turns binding and struct-tag failures into a
// field-keyed apperrors.ValidationError, collecting every violation.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"mechanic_shop/internal/apperrors"
)

var (
	once  sync.Once
	trans ut.Translator
)

// Setup configures gin's validator engine: field names come from json tags
// and messages are rendered in English. It is safe to call more than once.
func Setup() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonName)

		english := en.New()
		trans, _ = ut.New(english, english).GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)
	})
}

// jsonName is the wire name of f, "" when the field is skipped.
func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// Struct validates v with the `binding` tags gin uses, so callers outside
// the HTTP layer get the same checks.
func Struct(v interface{}) error {
	Setup()
	if err := binding.Validator.ValidateStruct(v); err != nil {
		return Translate(err)
	}
	return nil
}

// Translate converts an error from ShouldBindJSON or Struct into a
// *apperrors.ValidationError. Errors it does not recognise are reported
// under the "body" key.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	Setup()

	var already *apperrors.ValidationError
	if errors.As(err, &already) {
		return already
	}

	out := apperrors.NewValidationError()

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			out.Add(fieldPath(fe), message(fe))
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		out.Add(field, fmt.Sprintf("must be of type %s", typeErr.Type.String()))
	case errors.As(err, &syntaxErr):
		out.Add("body", "malformed JSON")
	case errors.Is(err, io.EOF):
		out.Add("body", "request body is empty")
	default:
		out.Add("body", err.Error())
	}
	return out
}

// fieldPath strips the root struct name from the namespace, so
// "createTicketRequest.inventory[0].quantity" becomes "inventory[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	if trans != nil {
		if msg := fe.Translate(trans); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}
