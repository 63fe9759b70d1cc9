package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/pantry/internal/pantry/service"
	"github.com/aussiebroadwan/pantry/pkg/idx"
	"github.com/aussiebroadwan/pantry/pkg/pantrysdk"
	"github.com/aussiebroadwan/pantry/pkg/slogx"
)

const maxBodyBytes = 1 << 20

const msgNull = "This field may not be null."

// decodeBody reads a JSON request body into dst. An empty body leaves dst
// untouched so required-field validation reports the missing fields.
// Unknown fields are ignored; known fields sent as null are rejected. On
// failure the error response has already been written and false is
// returned.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		pantrysdk.NewAPIError(http.StatusRequestEntityTooLarge, pantrysdk.ErrorCodeParseError,
			"Request body is too large.").WriteError(w)
		return false
	case err != nil:
		pantrysdk.NewAPIError(http.StatusBadRequest, pantrysdk.ErrorCodeParseError,
			"Request body could not be read.").WriteError(w)
		return false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return true
	}

	if err := json.Unmarshal(data, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr) && fieldPath(data, typeErr) != "":
			pantrysdk.NewValidationError(map[string]string{
				fieldPath(data, typeErr): typeMessage(typeErr.Type),
			}).WriteError(w)
		case errors.Is(err, pantrysdk.ErrInvalidPrice):
			pantrysdk.NewValidationError(map[string]string{
				"price": "A valid number is required.",
			}).WriteError(w)
		default:
			pantrysdk.NewAPIError(http.StatusBadRequest, pantrysdk.ErrorCodeParseError,
				"Request body must be valid JSON.").WriteError(w)
		}
		return false
	}

	nulls := make(map[string]string)
	nullFields(data, reflect.TypeOf(dst), "", nulls)
	if len(nulls) > 0 {
		pantrysdk.NewValidationError(nulls).WriteError(w)
		return false
	}
	return true
}

// fieldPath names the field a type error occurred in, with list indexes,
// e.g. "ingredients.1.name".
func fieldPath(data []byte, typeErr *json.UnmarshalTypeError) string {
	if path := valuePath(data, typeErr.Offset); path != "" {
		return path
	}
	return typeErr.Field
}

// valuePath walks data and returns the path of the value the decoder had
// just read at offset.
func valuePath(data []byte, offset int64) string {
	type frame struct {
		list    bool
		index   int
		key     string
		wantKey bool
	}
	var stack []*frame

	path := func() string {
		parts := make([]string, len(stack))
		for i, f := range stack {
			if f.list {
				parts[i] = strconv.Itoa(f.index)
			} else {
				parts[i] = f.key
			}
		}
		return strings.Join(parts, ".")
	}
	// done moves the innermost container past a finished value.
	done := func() {
		if n := len(stack); n > 0 {
			if top := stack[n-1]; top.list {
				top.index++
			} else {
				top.wantKey = true
			}
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return ""
		}

		if n := len(stack); n > 0 && stack[n-1].wantKey {
			if tok == json.Delim('}') {
				stack = stack[:n-1]
				done()
				continue
			}
			stack[n-1].key, _ = tok.(string)
			stack[n-1].wantKey = false
			continue
		}

		switch tok {
		case json.Delim('{'), json.Delim('['):
			if dec.InputOffset() >= offset {
				return path()
			}
			stack = append(stack, &frame{list: tok == json.Delim('['), wantKey: tok == json.Delim('{')})
		case json.Delim(']'):
			stack = stack[:len(stack)-1]
			done()
		default:
			if dec.InputOffset() >= offset {
				return path()
			}
			done()
		}
	}
}

// nullFields records every field of t that data sets to an explicit null,
// descending into nested objects and lists.
func nullFields(data []byte, t reflect.Type, prefix string, out map[string]string) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		var obj map[string]json.RawMessage
		if json.Unmarshal(data, &obj) != nil {
			return
		}
		for key, raw := range obj {
			name, ft, ok := jsonField(t, key)
			if !ok {
				continue
			}
			if string(bytes.TrimSpace(raw)) == "null" {
				out[prefix+name] = msgNull
				continue
			}
			nullFields(raw, ft, prefix+name+".", out)
		}
	case reflect.Slice:
		var items []json.RawMessage
		if json.Unmarshal(data, &items) != nil {
			return
		}
		for i, raw := range items {
			nullFields(raw, t.Elem(), prefix+strconv.Itoa(i)+".", out)
		}
	}
}

// jsonField finds the field of struct type t that encoding/json would
// decode key into.
func jsonField(t reflect.Type, key string) (string, reflect.Type, bool) {
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if strings.EqualFold(name, key) {
			return name, f.Type, true
		}
	}
	return "", nil, false
}

func typeMessage(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "Invalid value."
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "A valid integer is required."
	case reflect.Bool:
		return "Must be a valid boolean."
	case reflect.String:
		return "Not a valid string."
	case reflect.Slice:
		return "Expected a list of items."
	case reflect.Struct:
		return "Invalid data. Expected a dictionary."
	default:
		return "Invalid value."
	}
}

// pathID returns the {id} path value in canonical form. A malformed id is
// answered with 404 without touching the store.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		pantrysdk.ErrNotFound.WriteError(w)
		return "", false
	}
	return id.String(), true
}

// writeServiceError maps service errors onto the error bodies in
// pantrysdk. Anything unrecognised is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		pantrysdk.NewValidationError(verr.Fields).WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		pantrysdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrAuthentication):
		pantrysdk.NewAPIError(http.StatusUnauthorized, pantrysdk.ErrorCodeNotAuthenticated,
			"Invalid token.").WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		pantrysdk.ErrPermissionDenied.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		pantrysdk.ErrServerError.WriteError(w)
	}
}
