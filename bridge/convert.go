package bridge

import (
	"fmt"
	"reflect"
	"sort"
	"unicode"
	"unicode/utf8"

	"skit/types"
)

var (
	valueType = reflect.TypeOf((*types.Value)(nil)).Elem()
	errorType = reflect.TypeOf((*error)(nil)).Elem()
	ctxType   = reflect.TypeOf((*types.NativeCtx)(nil))
)

// ToValue converts a Go value into a script value. Supported: bool, all int
// and uint widths, float32/float64, string, slices and arrays of supported
// element types, map[string]T, plain structs (exported fields, lower-cased
// first letter as key), pointers to any of these, and types.Value itself,
// which passes through untouched. Nil pointers, slices, and maps become nil.
// Raw pointers never enter the value model; a pointer is dereferenced and its
// target converted by copy.
func ToValue(v interface{}) (types.Value, error) {
	if v == nil {
		return types.Nil, nil
	}
	if sv, ok := v.(types.Value); ok {
		return sv, nil
	}
	return toValue(reflect.ValueOf(v))
}

func toValue(rv reflect.Value) (types.Value, error) {
	if rv.Type().Implements(valueType) {
		if rv.Kind() == reflect.Ptr && rv.IsNil() {
			return types.Nil, nil
		}
		return rv.Interface().(types.Value), nil
	}
	switch rv.Kind() {
	case reflect.Bool:
		return types.NewBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return types.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return types.NewInt(int64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return types.NewFloat(rv.Float()), nil
	case reflect.String:
		return types.NewStr(rv.String()), nil
	case reflect.Slice:
		if rv.IsNil() {
			return types.Nil, nil
		}
		fallthrough
	case reflect.Array:
		list := types.NewList()
		for i := 0; i < rv.Len(); i++ {
			elem, err := toValue(rv.Index(i))
			if err != nil {
				return nil, err
			}
			list.Append(elem)
		}
		return list, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("cannot convert map with %s keys", rv.Type().Key())
		}
		if rv.IsNil() {
			return types.Nil, nil
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		m := types.NewMap()
		for _, k := range keys {
			val, err := toValue(rv.MapIndex(reflect.ValueOf(k)))
			if err != nil {
				return nil, err
			}
			m.Set(k, val)
		}
		return m, nil
	case reflect.Struct:
		m := types.NewMap()
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" {
				continue
			}
			val, err := toValue(rv.Field(i))
			if err != nil {
				return nil, err
			}
			m.Set(fieldKey(f.Name), val)
		}
		return m, nil
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return types.Nil, nil
		}
		return toValue(rv.Elem())
	default:
		return nil, fmt.Errorf("cannot convert %s to a script value", rv.Type())
	}
}

// FromValue converts a script value into a Go value of type t.
func FromValue(v types.Value, t reflect.Type) (reflect.Value, error) {
	if t == valueType {
		return reflect.ValueOf(v), nil
	}
	if rt := reflect.TypeOf(v); rt != nil && rt.AssignableTo(t) {
		return reflect.ValueOf(v), nil
	}
	if v.Kind() == types.KindNil {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use nil as %s", t)
	}
	switch t.Kind() {
	case reflect.Bool:
		if b, ok := v.(types.BoolValue); ok {
			return reflect.ValueOf(b.Val).Convert(t), nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if i, ok := v.(types.IntValue); ok {
			return reflect.ValueOf(i.Val).Convert(t), nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if i, ok := v.(types.IntValue); ok && i.Val >= 0 {
			return reflect.ValueOf(i.Val).Convert(t), nil
		}
	case reflect.Float32, reflect.Float64:
		switch n := v.(type) {
		case types.FloatValue:
			return reflect.ValueOf(n.Val).Convert(t), nil
		case types.IntValue:
			return reflect.ValueOf(float64(n.Val)).Convert(t), nil
		}
	case reflect.String:
		if s, ok := v.(types.StrValue); ok {
			return reflect.ValueOf(s.Val).Convert(t), nil
		}
	case reflect.Slice:
		if list, ok := v.(*types.ListValue); ok {
			out := reflect.MakeSlice(t, len(list.Elems), len(list.Elems))
			for i, elem := range list.Elems {
				ev, err := FromValue(elem, t.Elem())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
				}
				out.Index(i).Set(ev)
			}
			return out, nil
		}
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			break
		}
		if m, ok := v.(*types.MapValue); ok {
			out := reflect.MakeMapWithSize(t, len(m.Keys()))
			for _, k := range m.Keys() {
				elem, _ := m.Get(k)
				ev, err := FromValue(elem, t.Elem())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("key %q: %w", k, err)
				}
				out.SetMapIndex(reflect.ValueOf(k), ev)
			}
			return out, nil
		}
	case reflect.Struct:
		if m, ok := v.(*types.MapValue); ok {
			out := reflect.New(t).Elem()
			for i := 0; i < t.NumField(); i++ {
				f := t.Field(i)
				if f.PkgPath != "" {
					continue
				}
				elem, present := m.Get(fieldKey(f.Name))
				if !present {
					continue
				}
				fv, err := FromValue(elem, f.Type)
				if err != nil {
					return reflect.Value{}, fmt.Errorf("field %q: %w", fieldKey(f.Name), err)
				}
				out.Field(i).Set(fv)
			}
			return out, nil
		}
	case reflect.Ptr:
		inner, err := FromValue(v, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(t.Elem())
		out.Elem().Set(inner)
		return out, nil
	}
	return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", v.Kind(), t)
}

// fieldKey lower-cases the first rune of an exported field name, so a Go
// Color{Red, Green, Blue} record reads as {"red": .., "green": .., "blue": ..}
// in script.
func fieldKey(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[size:]
}
