// internal/analysis/proficiency.go
package analysis

import (
	"strconv"
	"strings"
)

// proficiencyLabels maps canonical labels to the 0-5 scale.
var proficiencyLabels = map[string]int{
	"none":         0,
	"beginner":     1,
	"novice":       1,
	"intermediate": 2,
	"proficient":   3,
	"advanced":     3,
	"expert":       4,
	"master":       5,
}

// ProficiencyToNumber converts any declared proficiency into the 0-5
// scale. Labels are matched case/whitespace-insensitively, unrecognized
// strings fall through to integer parsing, and anything else is 0. The
// result is always clamped into [0,5]; this never fails.
func ProficiencyToNumber(value interface{}) int {
	var n int
	switch v := value.(type) {
	case nil:
		return 0
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		n = int(v)
	case string:
		label := strings.ToLower(strings.TrimSpace(v))
		if level, ok := proficiencyLabels[label]; ok {
			return level
		}
		parsed, err := strconv.Atoi(label)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}

	if n < 0 {
		return 0
	}
	if n > 5 {
		return 5
	}
	return n
}

// NumberToProficiencyLabel is the display mapping back from the 0-5
// scale. Always returns a non-empty label.
func NumberToProficiencyLabel(level int) string {
	switch {
	case level >= 5:
		return "Master"
	case level >= 4:
		return "Expert"
	case level >= 3:
		return "Advanced"
	case level >= 2:
		return "Intermediate"
	case level > 0:
		return "Beginner"
	default:
		return "None"
	}
}
