// Package internal provides the reflection-based binding for configx.
package internal

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Decode binds snapshot values to struct fields using env and default tags.
// Nested and embedded structs are walked recursively; unexported and
// untagged fields are skipped.
func Decode(snapshot map[string]string, target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("configx: target must be a pointer to struct")
	}
	return decodeFields(snapshot, v.Elem())
}

func decodeFields(snapshot map[string]string, structValue reflect.Value) error {
	structType := structValue.Type()

	for i := 0; i < structValue.NumField(); i++ {
		field := structValue.Field(i)
		fieldType := structType.Field(i)

		if !field.CanSet() {
			continue
		}

		// Durations are Kind int64; only plain structs recurse.
		if field.Kind() == reflect.Struct && field.Type() != reflect.TypeOf(time.Time{}) {
			if err := decodeFields(snapshot, field); err != nil {
				return fmt.Errorf("configx: nested struct %s: %w", fieldType.Name, err)
			}
			continue
		}

		key := fieldType.Tag.Get("env")
		if key == "" {
			continue
		}

		value, ok := snapshot[key]
		if !ok {
			value = fieldType.Tag.Get("default")
		}

		if err := setField(field, value); err != nil {
			return fmt.Errorf("configx: field %s (env %s): %w", fieldType.Name, key, err)
		}
	}

	return nil
}

func setField(field reflect.Value, value string) error {
	if value == "" {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}

	return nil
}
