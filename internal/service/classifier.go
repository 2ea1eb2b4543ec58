package service

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/LazizjanAsatov/Catra/internal/domain"
)

const MsgNonFood = "Unknown product - this appears to be a non-food item or not suitable for human consumption."

var macroKeys = []string{"calories", "protein", "fat", "carbs", "sugar", "salt", "fiber"}

var placeholderNames = map[string]struct{}{
	"unknown":      {},
	"unknown item": {},
	"non-food":     {},
}

// IsNonFood reports whether the payload looks like the model gave up on a
// non-food photo: a placeholder name and no positive macro value.
func IsNonFood(p *domain.AnalysisPayload) bool {
	raw := p.Raw()
	return isUnknownName(productName(raw)) && !hasAnyMacro(raw)
}

func productName(raw []byte) string {
	name := gjson.GetBytes(raw, "product_name")
	if !name.Exists() || name.Type == gjson.Null {
		name = gjson.GetBytes(raw, "name")
	}
	if !name.Exists() || name.Type == gjson.Null {
		return ""
	}

	text := name.Raw
	if name.Type == gjson.String {
		text = name.Str
	}
	return strings.ToLower(strings.TrimSpace(text))
}

func isUnknownName(name string) bool {
	if name == "" {
		return true
	}
	if _, ok := placeholderNames[name]; ok {
		return true
	}
	return strings.Contains(name, "not food")
}

func hasAnyMacro(raw []byte) bool {
	nutrition := gjson.GetBytes(raw, "nutrition")
	if !nutrition.IsObject() {
		return false
	}
	for _, key := range macroKeys {
		if v, ok := macroValue(nutrition.Get(key)); ok && v > 0 {
			return true
		}
	}
	return false
}

// macroValue coerces a nutrition entry to a number. Strings and arrays are
// reduced to their digits, '-' and '.', then the longest numeric prefix is
// parsed. Arrays use their JSON text, so ["120 kcal"] reads as 120.
func macroValue(v gjson.Result) (float64, bool) {
	switch {
	case v.Type == gjson.Number:
		return v.Num, true
	case v.Type == gjson.String:
		return parseLeadingFloat(stripNonNumeric(v.Str))
	case v.IsArray():
		return parseLeadingFloat(stripNonNumeric(v.Raw))
	default:
		return 0, false
	}
}

func stripNonNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '-' || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseLeadingFloat accepts an optional '-', digits and at most one '.',
// stopping at the first character that does not fit.
func parseLeadingFloat(s string) (float64, bool) {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			digits++
		}
		i = j
	}
	if digits == 0 {
		return 0, false
	}

	prefix := strings.TrimSuffix(s[:i], ".")
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	// Out of range values come back as ±Inf or ±0.
	return v, true
}
