package client

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// QueryParam is one declared query-string field. Leaf params carry a Value;
// nested params carry children rendered with bracket notation
// (parent[child]=value, recursively).
type QueryParam struct {
	Key    string
	Value  any
	Nested QueryParams
}

// QueryParams is the ordered, declarative field list of a request type.
// Encoding preserves declaration order so the query string is identical
// across retry attempts.
type QueryParams []QueryParam

// Param declares a leaf query parameter.
func Param(key string, value any) QueryParam {
	return QueryParam{Key: key, Value: value}
}

// NestedParam declares a parameter object flattened as parent[child].
func NestedParam(key string, children ...QueryParam) QueryParam {
	return QueryParam{Key: key, Nested: children}
}

// Encode renders the ordered query string. Booleans render lower-case,
// slices comma-joined, times as RFC 3339; keys and values are
// percent-encoded independently, with the brackets of nested keys kept
// literal.
func (q QueryParams) Encode() string {
	var pairs []string
	q.encode("", &pairs)
	return strings.Join(pairs, "&")
}

func (q QueryParams) encode(prefix string, pairs *[]string) {
	for _, p := range q {
		key := url.QueryEscape(p.Key)
		if prefix != "" {
			key = prefix + "[" + key + "]"
		}
		if p.Nested != nil {
			p.Nested.encode(key, pairs)
			continue
		}
		*pairs = append(*pairs, key+"="+url.QueryEscape(formatQueryValue(p.Value)))
	}
}

func formatQueryValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []string:
		return strings.Join(val, ",")
	case []int:
		parts := make([]string, len(val))
		for i, n := range val {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, ",")
	case time.Time:
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
