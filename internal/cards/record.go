package cards

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/worldicons/worldicons-bot/internal/domain"
)

// CardFromMap builds a Card from one decoded JSON object.
// Absent or null fields take their zero default; present fields are coerced
// (numbers to strings, base-10 strings and floats to an integer weight).
func CardFromMap(raw map[string]any) (domain.Card, error) {
	weight, err := intField(raw, "weight")
	if err != nil {
		return domain.Card{}, err
	}
	return domain.Card{
		Key:      stringField(raw, "key"),
		Name:     stringField(raw, "name"),
		URI:      stringField(raw, "uri"),
		ImageURL: stringField(raw, "image_url"),
		Weight:   weight,
	}, nil
}

// TierFromMap builds a Tier from one decoded JSON object, with the same defaulting as CardFromMap.
func TierFromMap(raw map[string]any) (domain.Tier, error) {
	minWeight, err := intField(raw, "min_weight")
	if err != nil {
		return domain.Tier{}, err
	}
	return domain.Tier{
		Name:      stringField(raw, "name"),
		MinWeight: minWeight,
	}, nil
}

func stringField(raw map[string]any, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

func intField(raw map[string]any, key string) (int, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return 0, nil
	}
	// Hand-edited files quote weights as plain decimals: "010" is ten, not octal.
	if str, ok := v.(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", key, str, err)
		}
		return n, nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %v: %w", key, v, err)
	}
	return n, nil
}
