package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/sayeedajmal/saudimart-core/pkg/errors"
)

// ParseQueryInt reads an integer query parameter, falling back to defaultVal
// when absent. Values outside [min, max] are rejected rather than clamped so
// a caller asking for more than the listing cap hears about it.
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be an integer").
			WithDetails(map[string]any{"field": key, "value": raw})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").
			WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}
