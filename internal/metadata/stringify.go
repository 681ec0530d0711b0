package metadata

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Stringify renders a resolved value the way it appears in output: strings
// verbatim, numbers in shortest form, lists joined with ",", maps as JSON and
// times as RFC 3339.
func Stringify(v any) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	case bool:
		return strconv.FormatBool(vv)
	case int:
		return strconv.Itoa(vv)
	case int64:
		return strconv.FormatInt(vv, 10)
	case uint64:
		return strconv.FormatUint(vv, 10)
	case float32:
		return formatFloat(float64(vv), 32)
	case float64:
		return formatFloat(vv, 64)
	case time.Time:
		return vv.Format(time.RFC3339)
	case []any:
		parts := make([]string, len(vv))
		for i, item := range vv {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(vv, ",")
	case map[string]any, map[any]any:
		b, err := json.Marshal(Normalize(vv))
		if err != nil {
			return fmt.Sprint(vv)
		}
		return string(b)
	default:
		return fmt.Sprint(vv)
	}
}

func formatFloat(f float64, bits int) string {
	if math.Abs(f) >= 1e21 {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}
