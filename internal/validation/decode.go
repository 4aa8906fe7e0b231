package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"mechanic_shop/internal/apperrors"
)

// DecodeJSON fills the struct req points to from body and validates it. Each
// top-level field is decoded on its own so every type mismatch is reported,
// then the binding rules run on whatever decoded. A field with a type error
// gets no further rule messages.
func DecodeJSON(body []byte, req interface{}) error {
	Setup()
	out := apperrors.NewValidationError()

	if len(bytes.TrimSpace(body)) == 0 {
		out.Add("body", "request body is empty")
		return out
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			out.Add("body", "malformed JSON")
		} else {
			out.Add("body", "must be a JSON object")
		}
		return out
	}

	typed := make(map[string]bool)
	v := reflect.ValueOf(req).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := jsonName(f)
		if !f.IsExported() || name == "" {
			continue
		}
		msg, ok := raw[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(msg, v.Field(i).Addr().Interface()); err != nil {
			field, text := typeMessage(name, err)
			out.Add(field, text)
			typed[name] = true
		}
	}

	if err := Struct(req); err != nil {
		var verr *apperrors.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		for field, msgs := range verr.Fields {
			if typed[rootField(field)] {
				continue
			}
			for _, m := range msgs {
				out.Add(field, m)
			}
		}
	}

	if len(out.Fields) == 0 {
		return nil
	}
	return out
}

func typeMessage(name string, err error) (string, string) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := name
		if typeErr.Field != "" {
			field = name + "." + typeErr.Field
		}
		return field, fmt.Sprintf("must be of type %s", typeErr.Type.String())
	}
	return name, "is invalid"
}

// rootField cuts "inventory[0].quantity" down to "inventory".
func rootField(path string) string {
	if i := strings.IndexAny(path, ".["); i >= 0 {
		return path[:i]
	}
	return path
}
