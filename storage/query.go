package storage

import (
	"sort"
	"strings"
)

// ==================== LOCAL QUERY EVALUATION ====================
// Helpers for backends that evaluate queries in process.

// Matches reports whether data satisfies every filter
func Matches(data map[string]any, filters []Filter) bool {
	for _, f := range filters {
		v, ok := data[f.Field]
		if !ok || Compare(v, f.Value) != 0 {
			return false
		}
	}
	return true
}

// Apply filters, orders and limits docs in place and returns the result
func Apply(docs []Document, q Query) []Document {
	out := docs[:0]
	for _, d := range docs {
		if Matches(d.Data, q.Where) {
			out = append(out, d)
		}
	}

	if q.OrderBy != "" {
		kept := out[:0]
		for _, d := range out {
			// documents without the order field are excluded, as the backend does
			if _, ok := d.Data[q.OrderBy]; ok {
				kept = append(kept, d)
			}
		}
		out = kept
		sort.SliceStable(out, func(i, j int) bool {
			c := Compare(out[i].Data[q.OrderBy], out[j].Data[q.OrderBy])
			if q.Direction == Desc {
				return c > 0
			}
			return c < 0
		})
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

// Compare orders two document values: null < bool < number < string < other
func Compare(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch ra {
	case 1:
		ab, bb := a.(bool), b.(bool)
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		default:
			return 1
		}
	case 2:
		af, _ := number(a)
		bf, _ := number(b)
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	case 3:
		return strings.Compare(a.(string), b.(string))
	}
	return 0
}

func rank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case string:
		return 3
	}
	if _, ok := number(v); ok {
		return 2
	}
	return 4
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// MergeData deep-merges src into dst: nested maps are merged key by key,
// every other value in src replaces the one in dst.
func MergeData(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[k] = MergeData(dstMap, srcMap)
			continue
		}
		dst[k] = v
	}
	return dst
}
