package scoring

import "github.com/riskibarqy/fantasy-points/internal/domain/fantasy"

// MultiplierPolicy decides the captain multiplier for the active chip.
type MultiplierPolicy interface {
	CaptainMultiplier(chip fantasy.Chip) int
}

type DefaultMultiplierPolicy struct {
	Captain       int
	TripleCaptain int
}

func NewDefaultMultiplierPolicy() DefaultMultiplierPolicy {
	return DefaultMultiplierPolicy{Captain: 2, TripleCaptain: 3}
}

func (p DefaultMultiplierPolicy) CaptainMultiplier(chip fantasy.Chip) int {
	if chip == fantasy.ChipTripleCaptain && p.TripleCaptain > 0 {
		return p.TripleCaptain
	}
	if p.Captain > 0 {
		return p.Captain
	}
	return 2
}
