package fields

import (
	"fmt"
	"reflect"
)

// Values returns every tagged column of rec keyed by storage name. rec is a
// struct or pointer to struct whose fields carry `field:"name"` tags.
// Nil pointers map to nil.
func Values(rec any) map[string]any {
	v := reflect.Indirect(reflect.ValueOf(rec))
	t := v.Type()
	out := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get("field")
		if name == "" {
			continue
		}
		f := v.Field(i)
		if f.Kind() == reflect.Pointer {
			if f.IsNil() {
				out[name] = nil
				continue
			}
			f = f.Elem()
		}
		out[name] = f.Interface()
	}
	return out
}

// NonNull is Values without nil pointers and empty strings.
func NonNull(rec any) map[string]any {
	out := Values(rec)
	for k, v := range out {
		if v == nil || v == "" {
			delete(out, k)
		}
	}
	return out
}

// Assign sets the column named field on rec, which must be a pointer to a
// tagged struct. value is coerced to the column's Go type first.
func Assign(rec any, field string, value any) error {
	v := reflect.ValueOf(rec)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("assign %s: need pointer to struct, got %T", field, rec)
	}
	v = v.Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("field") != field {
			continue
		}
		return setValue(v.Field(i), field, value)
	}
	return fmt.Errorf("assign %s: no such field on %T", field, rec)
}

func setValue(f reflect.Value, field string, value any) error {
	target := f.Type()
	nullable := target.Kind() == reflect.Pointer
	if nullable {
		target = target.Elem()
	}

	var vt VarType
	switch target.Kind() {
	case reflect.String:
		vt = String
	case reflect.Int, reflect.Int64:
		vt = Int
	case reflect.Bool:
		vt = Bool
	case reflect.Float64:
		vt = Float
	default:
		return fmt.Errorf("assign %s: unsupported kind %s", field, target.Kind())
	}

	coerced, err := Coerce(vt, value)
	if err != nil {
		return fmt.Errorf("assign %s: %w", field, err)
	}

	if coerced == nil {
		f.Set(reflect.Zero(f.Type()))
		return nil
	}

	cv := reflect.ValueOf(coerced).Convert(target)
	if nullable {
		p := reflect.New(target)
		p.Elem().Set(cv)
		f.Set(p)
		return nil
	}
	f.Set(cv)
	return nil
}
