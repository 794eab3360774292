package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// bindToStruct copies values into the fields of *v tagged with tagName.
// Untagged fields are left alone. Missing values keep the zero value.
func bindToStruct(v any, tagName string, values map[string][]string, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}

	rt := rv.Type()
	if !hasTag(rt, tagName) {
		return nil
	}
	for i := range rv.NumField() {
		field := rv.Field(i)
		fieldType := rt.Field(i)
		if !field.CanSet() {
			continue
		}
		tag, ok := fieldType.Tag.Lookup(tagName)
		if !ok || tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")

		fieldValues := values[name]
		if len(fieldValues) == 0 {
			continue
		}
		if err := setFieldValue(field, fieldType.Type, fieldValues); err != nil {
			return fmt.Errorf("%w: %s: %v", bindErr, name, err)
		}
	}
	return nil
}

func setFieldValue(field reflect.Value, fieldType reflect.Type, values []string) error {
	if fieldType.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(fieldType.Elem()))
		}
		return setFieldValue(field.Elem(), fieldType.Elem(), values)
	}

	value := strings.TrimSpace(values[0])
	switch fieldType.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid bool value %q", value)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported type %s", fieldType.Kind())
	}
	return nil
}
