package app

import (
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"itinerate/internal/domain"
)

/********** alias registry (single source of truth) **********/

var attractionAliases = map[string][]string{
	"name":           {"name", "title", "attraction_name"},
	"description":    {"description", "summary", "about"},
	"effort_details": {"effort_details", "effort.details", "effortDetails"},
	"entry_fee":      {"entry_fee", "entryFee", "price", "fee", "ticket_price"},
	"avg_time":       {"avg_time_spent_hrs", "avgTimeSpentHrs", "duration_hrs", "duration"},
	"effort_score":   {"effort_score", "effort.score", "effortScore"},
	"id":             {"id", "attraction_id"},
	"tags":           {"tags", "interests", "categories"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func firstNonEmpty(m map[string]any, key string) string {
	for _, p := range attractionAliases[key] {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return s
		}
	}
	return ""
}

// floatFlexible: number from several paths (float64/int/string like "8,5").
// A string that is present but not a plain amount is an error rather than a
// silent miss.
func floatFlexible(m map[string]any, key string) (float64, bool, error) {
	for _, p := range attractionAliases[key] {
		switch v := lookupAny(m, p).(type) {
		case float64:
			return v, true, nil
		case int:
			return float64(v), true, nil
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f, true, nil
			}
		case string:
			s := strings.TrimPrefix(strings.TrimSpace(v), "$")
			if s == "" {
				continue
			}
			f, err := parseAmount(s)
			if err != nil {
				return 0, false, fmt.Errorf("%s %q: %w", p, v, err)
			}
			return f, true, nil
		}
	}
	return 0, false, nil
}

// parseAmount accepts "12.5" and a decimal comma ("12,5"). Anything that
// could be a thousands separator ("1,000", "1,000.50", "1,2,3") is refused.
func parseAmount(s string) (float64, error) {
	if n := strings.Count(s, ","); n > 0 {
		i := strings.IndexByte(s, ',')
		if n > 1 || strings.Contains(s, ".") || len(s)-i-1 == 3 {
			return 0, fmt.Errorf("ambiguous number")
		}
		s = s[:i] + "." + s[i+1:]
	}
	return strconv.ParseFloat(s, 64)
}

// stringsFlexible accepts a list of strings or a single comma separated string.
func stringsFlexible(m map[string]any, key string) []string {
	for _, p := range attractionAliases[key] {
		switch v := lookupAny(m, p).(type) {
		case []any:
			out := make([]string, 0, len(v))
			for _, it := range v {
				if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, strings.TrimSpace(s))
				}
			}
			if len(out) > 0 {
				return out
			}
		case string:
			var out []string
			for _, s := range strings.Split(v, ",") {
				if t := strings.TrimSpace(s); t != "" {
					out = append(out, t)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

// stableID derives a positive id from destination and name when the
// payload carries none.
func stableID(destination, name string) int64 {
	sum := sha1.Sum([]byte(strings.ToLower(destination) + "|" + name))
	return int64(binary.BigEndian.Uint64(sum[:8]) >> 1)
}

/********** attraction mapper **********/

func mapAttraction(destination string, m map[string]any) (domain.Attraction, error) {
	a := domain.Attraction{
		Name:          firstNonEmpty(m, "name"),
		Description:   firstNonEmpty(m, "description"),
		EffortDetails: firstNonEmpty(m, "effort_details"),
		Tags:          stringsFlexible(m, "tags"),
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	f, ok, err := floatFlexible(m, "entry_fee")
	if err != nil {
		return a, err
	}
	if ok {
		a.EntryFee = f
	}
	if f, ok, err = floatFlexible(m, "avg_time"); err != nil {
		return a, err
	} else if ok {
		a.AvgTimeSpentHrs = f
	}
	if f, ok, err = floatFlexible(m, "effort_score"); err != nil {
		return a, err
	} else if ok {
		if f != math.Trunc(f) {
			return a, fmt.Errorf("effort score %v is not a whole number", f)
		}
		a.EffortScore = int(f)
	}
	if f, ok, err = floatFlexible(m, "id"); err != nil {
		return a, err
	} else if ok && f > 0 {
		a.ID = int64(f)
	} else {
		a.ID = stableID(destination, a.Name)
	}
	return a, nil
}

// ParseCatalog reads a catalog document keyed by destination:
//
//	{"Singapore": [{"name": "...", "tags": [...], "entry_fee": 28, ...}]}
//
// Field names are matched loosely; see attractionAliases.
func ParseCatalog(raw []byte) (map[string][]domain.Attraction, error) {
	var doc map[string][]map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	out := make(map[string][]domain.Attraction, len(doc))
	for dest, items := range doc {
		dest = strings.TrimSpace(dest)
		if dest == "" {
			return nil, fmt.Errorf("parse catalog: empty destination key")
		}
		as := make([]domain.Attraction, 0, len(items))
		for i, it := range items {
			a, err := mapAttraction(dest, it)
			if err != nil {
				return nil, fmt.Errorf("parse catalog: %s[%d]: %w", dest, i, err)
			}
			as = append(as, a)
		}
		out[dest] = as
	}
	return out, nil
}
