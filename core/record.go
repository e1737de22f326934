package core

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Record là document mục tiêu khi kiểm tra ownership
type Record interface {
	// Field trả về giá trị của field theo tên (tên JSON), ok=false nếu không có
	Field(name string) (any, bool)
}

// MapRecord là Record dựa trên map
type MapRecord map[string]any

func (m MapRecord) Field(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// structRecord đọc field của struct theo json tag
type structRecord struct {
	v reflect.Value
}

// NewStructRecord bọc một struct (hoặc pointer tới struct) thành Record.
// Trả về nil nếu v là nil, để Evaluate chuyển sang chế độ filter.
func NewStructRecord(v any) Record {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		panic(fmt.Sprintf("core: NewStructRecord expects a struct, got %T", v))
	}
	return structRecord{v: rv}
}

func (s structRecord) Field(name string) (any, bool) {
	return fieldByJSONName(s.v, name)
}

func fieldByJSONName(rv reflect.Value, name string) (any, bool) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := rv.Field(i)
		// Struct embedded không có json tag: tìm tiếp bên trong
		if sf.Anonymous && sf.Tag.Get("json") == "" {
			inner := fv
			for inner.Kind() == reflect.Ptr {
				if inner.IsNil() {
					break
				}
				inner = inner.Elem()
			}
			if inner.Kind() == reflect.Struct {
				if v, ok := fieldByJSONName(inner, name); ok {
					return v, true
				}
			}
			continue
		}
		tagName := strings.Split(sf.Tag.Get("json"), ",")[0]
		if tagName == "-" {
			continue
		}
		if tagName == "" {
			tagName = sf.Name
		}
		if tagName == name {
			return fv.Interface(), true
		}
	}
	return nil, false
}

// normalizeID đưa giá trị ID về string để so sánh với Principal.ID
func normalizeID(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, t != ""
	case *string:
		if t == nil {
			return "", false
		}
		return *t, *t != ""
	case fmt.Stringer:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Ptr && rv.IsNil() {
			return "", false
		}
		return t.String(), true
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10), true
		}
		return "", false
	case reflect.String:
		return rv.String(), rv.String() != ""
	}
	return "", false
}
