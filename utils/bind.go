package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/2HgO/webhook-registry/errors"
)

var Validator = NewStructValidator()
var queryBinder = schema.NewDecoder()

func init() {
	queryBinder.SetAliasTag("query")
	queryBinder.IgnoreUnknownKeys(true)
}

type structValidator struct {
	validator *validator.Validate
}

func (s *structValidator) Validate(v any) error {
	return s.validator.Struct(v)
}

// fieldName reports a field by the name the client sent it under.
func fieldName(fld reflect.StructField) string {
	for _, key := range []string{"query", "uri", "json"} {
		tag, ok := fld.Tag.Lookup(key)
		if !ok {
			continue
		}
		if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

func NewStructValidator() *structValidator {
	v := &structValidator{validator: validator.New(validator.WithRequiredStructEnabled())}
	v.validator.RegisterTagNameFunc(fieldName)
	return v
}

func bindUri(r *http.Request, data any) error {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return errors.NewValidationError("invalid data type")
	}
	v = v.Elem()
	for _, field := range reflect.VisibleFields(v.Type()) {
		key, ok := field.Tag.Lookup("uri")
		if !ok || !field.IsExported() || field.Type.Kind() != reflect.String {
			continue
		}
		if val := r.PathValue(key); val != "" {
			v.FieldByIndex(field.Index).SetString(val)
		}
	}
	return nil
}

// Bind fills data from, in order, its default tags, the path, the query
// string and the JSON body, then validates it.
func Bind(r *http.Request, data any) error {
	if err := defaults.Set(data); err != nil {
		return err
	}
	if err := bindUri(r, data); err != nil {
		return err
	}
	if err := queryBinder.Decode(data, r.URL.Query()); err != nil {
		return err
	}
	if r.Body != nil {
		bodyData, err := io.ReadAll(r.Body)
		if err != nil {
			return err
		}
		if len(bodyData) > 0 {
			if err = json.Unmarshal(bodyData, data); err != nil {
				return err
			}
		}
	}

	return Validator.Validate(data)
}
