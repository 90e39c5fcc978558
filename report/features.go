package report

import "fmt"

// Side splits the metrics of a position into attacking and defensive ones.
type Side string

const (
	Offense Side = "o"
	Defense Side = "d"
)

func (s Side) Label() string {
	switch s {
	case Offense:
		return "Offense"
	case Defense:
		return "Defense"
	}
	return string(s)
}

// ParseSide accepts the short keys as well as the long names.
func ParseSide(s string) (Side, error) {
	switch s {
	case "o", "off", "offense":
		return Offense, nil
	case "d", "def", "defense":
		return Defense, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSide, s)
}

// featurePosition lists, per "{Position}-{o|d}", the metrics shown for that position.
var featurePosition = map[string][]string{
	"Forward-o":    {"G", "xG", "NPG", "A", "xA", "Drb_Off"},
	"Forward-d":    {"Tackles", "Inter"},
	"Midfielder-o": {"G", "xG", "A", "xA", "xGBuildup", "KeyP", "Drb_Off", "AvgP", "PS%"},
	"Midfielder-d": {"Tackles", "Inter", "Clear", "Blocks"},
	"Defender-o":   {"G", "xG", "A", "xA", "xGBuildup", "AvgP", "PS%"},
	"Defender-d":   {"Tackles", "Inter", "Clear", "Blocks", "Drb_Def"},
	"Goalkeeper-o": {"xGBuildup", "AvgP", "PS%"},
	"Goalkeeper-d": {"Tackles", "Inter", "Clear", "Blocks", "Drb_Def"},
}

// Metrics returns the ordered metric names for a position and side.
func Metrics(position string, side Side) ([]string, error) {
	list, ok := featurePosition[position+"-"+string(side)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPosition, position)
	}
	out := make([]string, len(list))
	copy(out, list)
	return out, nil
}

// ValidMetric reports whether metric is offered for position and side.
func ValidMetric(position string, side Side, metric string) bool {
	for _, m := range featurePosition[position+"-"+string(side)] {
		if m == metric {
			return true
		}
	}
	return false
}

// Positions returns the positions the feature table knows about.
func Positions() []string {
	return []string{"Forward", "Midfielder", "Defender", "Goalkeeper"}
}
