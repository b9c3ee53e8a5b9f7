package types

// VulnerabilityTier is one of the four ordered vulnerability levels.
// The integer order is the fixed display order, low to high.
type VulnerabilityTier int

const (
	TierFaible VulnerabilityTier = iota
	TierMoyenne
	TierElevee
	TierTresElevee
)

var tierLabels = [...]string{"Faible", "Moyenne", "Élevée", "Très élevée"}

// Label returns the display label used in the source table and the charts.
func (t VulnerabilityTier) Label() string {
	if t < 0 || int(t) >= len(tierLabels) {
		return ""
	}
	return tierLabels[t]
}

// TierLabels returns all four labels in display order.
func TierLabels() []string {
	out := make([]string, len(tierLabels))
	copy(out, tierLabels[:])
	return out
}

// ParseTier maps a display label back to its tier.
func ParseTier(label string) (VulnerabilityTier, bool) {
	for i, l := range tierLabels {
		if l == label {
			return VulnerabilityTier(i), true
		}
	}
	return 0, false
}

// RGBA is a render color, marshaled as [r, g, b, a] for the map layer.
type RGBA [4]int

// Transparent is the designated no-data color.
var Transparent = RGBA{0, 0, 0, 0}
