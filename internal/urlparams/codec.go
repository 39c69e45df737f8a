// Package urlparams keeps filter, search and pagination state in the query
// string of a navigable location.
//
// The encoding is the console's only wire format:
//
//	tags[]=a&tags[]=b&page=2&active=false&q=test
//
// Arrays use bracket keys, integers and decimals decode to int and float64,
// "true" and "false" decode to bool and everything else stays a string.
package urlparams

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Params is the parsed form of a query string.
type Params map[string]any

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

const arraySuffix = "[]"

var (
	intPattern   = regexp.MustCompile(`^-?[0-9]+$`)
	floatPattern = regexp.MustCompile(`^-?[0-9]+\.[0-9]+$`)
)

// Parse decodes a query string, with or without the leading '?'. It never
// fails: segments that cannot be percent-decoded are kept as raw strings.
func Parse(query string) Params {
	query = strings.TrimPrefix(query, "?")
	out := make(Params)
	if query == "" {
		return out
	}

	for _, segment := range strings.Split(query, "&") {
		if segment == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(segment, "=")

		key := unescape(rawKey)
		bracketed := strings.HasSuffix(key, arraySuffix)
		if bracketed {
			key = strings.TrimSuffix(key, arraySuffix)
		}
		if key == "" {
			continue
		}

		value := inferScalar(unescape(rawValue))
		if !bracketed {
			// Plain keys are scalars; the last occurrence wins.
			out[key] = value
			continue
		}
		if arr, ok := out[key].([]any); ok {
			out[key] = append(arr, value)
		} else {
			out[key] = []any{value}
		}
	}
	return out
}

func unescape(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// inferScalar applies the typed scalar rules to a decoded value.
func inferScalar(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if intPattern.MatchString(s) {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) {
			return f
		}
		return s
	}
	if floatPattern.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) {
			return f
		}
	}
	return s
}

// Encode serializes p with keys in sorted order. Slices are written as one
// bracketed key per element. Encode does not strip anything; callers that
// want the update semantics run Strip first.
func Encode(p Params) string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		v := deref(p[k])
		rv := reflect.ValueOf(v)
		if rv.IsValid() && rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
			name := url.QueryEscape(k) + arraySuffix
			for i := 0; i < rv.Len(); i++ {
				parts = append(parts, name+"="+url.QueryEscape(formatScalar(deref(rv.Index(i).Interface()))))
			}
			continue
		}
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(formatScalar(v)))
	}
	return strings.Join(parts, "&")
}

func formatScalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(x).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(x).Uint(), 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case interface{ String() string }:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// deref follows pointers so partials built from structs with optional fields
// encode their values. A nil pointer becomes nil.
func deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

// Keep reports whether a value survives an update. Zero numbers and false are
// real filter values and are kept; nil, empty strings, empty slices, NaN and
// infinities mean "no filter" and are dropped. Maps and structs have no query
// string form and are dropped too, as are slices with no scalar element.
func Keep(v any) bool {
	v = deref(v)
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case []byte:
		return len(x) > 0
	case bool:
		return true
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if keepElement(rv.Index(i).Interface()) {
				return true
			}
		}
		return false
	case reflect.Map, reflect.Struct, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return false
	case reflect.String:
		return rv.Len() > 0
	case reflect.Float32, reflect.Float64:
		return finite(rv.Float())
	}
	return true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// keepElement reports whether a slice element is written. Nested slices have
// no bracket form.
func keepElement(v any) bool {
	v = deref(v)
	if _, ok := v.([]byte); !ok {
		if k := reflect.ValueOf(v).Kind(); k == reflect.Slice || k == reflect.Array {
			return false
		}
	}
	return Keep(v)
}

// validKey reports whether k can be written as a key. A key ending in "[]"
// would read back as an array.
func validKey(k string) bool {
	return k != "" && !strings.HasSuffix(k, arraySuffix)
}

// canonical returns v in the form Parse produces for it after encoding:
// scalars are typed by the same rules and slices become []any of their kept
// elements.
func canonical(v any) any {
	if _, ok := v.([]byte); !ok {
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			out := make([]any, 0, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				e := deref(rv.Index(i).Interface())
				if !keepElement(e) {
					continue
				}
				if c := canonical(e); Keep(c) {
					out = append(out, c)
				}
			}
			return out
		}
	}
	return inferScalar(formatScalar(v))
}

// Strip returns a copy of p without the values Keep rejects and without keys
// that cannot be written. Kept values are canonical, so
// Parse(Encode(Strip(p))) equals Strip(p).
func Strip(p Params) Params {
	out := make(Params, len(p))
	for k, v := range p {
		if !validKey(k) || !Keep(v) {
			continue
		}
		c := canonical(deref(v))
		if !Keep(c) {
			continue
		}
		out[k] = c
	}
	return out
}
