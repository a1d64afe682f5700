package macro

import (
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"
)

// Resolver maps a placeholder name to its substitution value. The second
// result reports whether the name resolved; a false result leaves the
// placeholder verbatim in the expanded output.
type Resolver func(name string) (string, bool)

// Map returns a Resolver backed by exact-key lookup in values.
func Map(values map[string]string) Resolver {
	return func(name string) (string, bool) {
		value, ok := values[name]
		return value, ok
	}
}

// First combines resolvers in priority order. Candidates are consulted left
// to right and the first one that resolves a name wins; later resolvers are
// not called for that name.
func First(resolvers ...Resolver) Resolver {
	return func(name string) (string, bool) {
		for _, resolve := range resolvers {
			if value, ok := resolve(name); ok {
				return value, true
			}
		}
		return "", false
	}
}

// Env resolves names from the process environment.
func Env() Resolver {
	return os.LookupEnv
}

// Fields resolves names against the exported fields of a struct, or the
// keys of a string-keyed map. Values are rendered with fmt.Sprint; nil
// pointers and absent members do not resolve.
func Fields(v any) Resolver {
	return fields(v, false)
}

// FieldsFold is Fields with case-insensitive name matching.
func FieldsFold(v any) Resolver {
	return fields(v, true)
}

func fields(v any, fold bool) Resolver {
	return func(name string) (string, bool) {
		rv := reflect.ValueOf(v)
		for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
			if rv.IsNil() {
				return "", false
			}
			rv = rv.Elem()
		}

		switch rv.Kind() {
		case reflect.Struct:
			return structField(rv, name, fold)
		case reflect.Map:
			return mapEntry(rv, name, fold)
		default:
			return "", false
		}
	}
}

// structField looks up an exported field by name. An exact match wins over a
// case-insensitive one.
func structField(rv reflect.Value, name string, fold bool) (string, bool) {
	rt := rv.Type()
	folded := -1
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Name == name {
			return render(rv.Field(i))
		}
		if fold && folded < 0 && strings.EqualFold(field.Name, name) {
			folded = i
		}
	}
	if folded >= 0 {
		return render(rv.Field(folded))
	}
	return "", false
}

// mapEntry looks up a map value by string key, exact match first.
func mapEntry(rv reflect.Value, name string, fold bool) (string, bool) {
	if rv.Type().Key().Kind() != reflect.String {
		return "", false
	}
	if value := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key())); value.IsValid() {
		return render(value)
	}
	if !fold {
		return "", false
	}
	for _, key := range rv.MapKeys() {
		if strings.EqualFold(key.String(), name) {
			return render(rv.MapIndex(key))
		}
	}
	return "", false
}

// render converts a reflected value to its textual form. Nil values are
// treated as absent.
func render(rv reflect.Value) (string, bool) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	return fmt.Sprint(rv.Interface()), true
}

// Captures resolves names against the named groups of a regular-expression
// match. The match argument must be the index pairs returned by
// FindStringSubmatchIndex on s. Groups that did not participate in the match
// do not resolve.
func Captures(pattern *regexp.Regexp, s string, match []int) Resolver {
	return func(name string) (string, bool) {
		i := pattern.SubexpIndex(name)
		if i < 0 || 2*i+1 >= len(match) {
			return "", false
		}
		start, end := match[2*i], match[2*i+1]
		if start < 0 {
			return "", false
		}
		return s[start:end], true
	}
}
