// Package env overrides configuration fields with environment variables.
package env

import (
	"fmt"
	"os"
	"reflect"
	"strings"
)

// Unmarshaler is implemented by fields that parse their own value.
type Unmarshaler interface {
	UnmarshalEnv(prefix string, v string) error
}

func loadEnvInternal(env map[string]string, prefix string, prv reflect.Value) error {
	if prv.Kind() != reflect.Pointer {
		return loadEnvInternal(env, prefix, prv.Addr())
	}

	if i, ok := prv.Interface().(Unmarshaler); ok {
		if ev, ok := env[prefix]; ok {
			err := i.UnmarshalEnv(prefix, ev)
			if err != nil {
				return fmt.Errorf("%s: %w", prefix, err)
			}
		}
		return nil
	}

	rt := prv.Type().Elem()

	switch rt.Kind() {
	case reflect.String:
		if ev, ok := env[prefix]; ok {
			prv.Elem().SetString(ev)
		}
		return nil

	case reflect.Struct:
		for i := 0; i < rt.NumField(); i++ {
			jsonTag := rt.Field(i).Tag.Get("json")

			// load only serialized fields
			if jsonTag == "-" || jsonTag == "" {
				continue
			}

			err := loadEnvInternal(env, prefix+"_"+
				strings.ToUpper(strings.TrimSuffix(jsonTag, ",omitempty")), prv.Elem().Field(i))
			if err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("%s: unsupported type: %v", prefix, rt)
}

func loadWithEnv(env map[string]string, prefix string, v interface{}) error {
	return loadEnvInternal(env, prefix, reflect.ValueOf(v).Elem())
}

// Load overrides fields of v with variables named prefix_FIELD,
// where FIELD is the upper-cased JSON name of the field.
func Load(prefix string, v interface{}) error {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		key, val, _ := strings.Cut(kv, "=")
		env[key] = val
	}
	return loadWithEnv(env, prefix, v)
}
