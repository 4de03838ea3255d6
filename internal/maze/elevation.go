package maze

import (
	"fmt"
	"math/rand"
)

// Tier is a discrete terrain band. The value is the band's nominal raw
// elevation.
type Tier int

const (
	VeryLow  Tier = -75
	Low      Tier = -25
	Neutral  Tier = 0
	High     Tier = 25
	VeryHigh Tier = 75
)

// Tiers lists every band from lowest to highest.
var Tiers = [5]Tier{VeryLow, Low, Neutral, High, VeryHigh}

// String returns a human-readable tier name.
func (t Tier) String() string {
	switch t {
	case VeryLow:
		return "very_low"
	case Low:
		return "low"
	case Neutral:
		return "neutral"
	case High:
		return "high"
	case VeryHigh:
		return "very_high"
	default:
		return "unknown"
	}
}

// Rank returns the tier's position in Tiers, or -1 for an unknown tier.
func (t Tier) Rank() int {
	for i, tier := range Tiers {
		if tier == t {
			return i
		}
	}
	return -1
}

// ElevationModel selects how the propagator's probability draws are read.
type ElevationModel int

const (
	// ModelObserved reproduces the shipped generator: the stay branch fires
	// only when the draw is exactly 0.25, and the 1/3 return-to-neutral
	// chance evaluates to zero.
	ModelObserved ElevationModel = iota
	// ModelIntended uses a 1/4 stay chance and a 1/3 return chance.
	ModelIntended
)

// String returns the model name used in configuration.
func (m ElevationModel) String() string {
	switch m {
	case ModelObserved:
		return "observed"
	case ModelIntended:
		return "intended"
	default:
		return "unknown"
	}
}

// ParseElevationModel converts a configuration name to a model.
func ParseElevationModel(name string) (ElevationModel, error) {
	switch name {
	case "", "observed":
		return ModelObserved, nil
	case "intended":
		return ModelIntended, nil
	default:
		return ModelObserved, fmt.Errorf("%w: unknown elevation model %q", ErrInvalidConfig, name)
	}
}

const (
	stayChance   = 0.25
	returnChance = 1.0 / 3.0
)

// Propagator assigns a child cell's elevation from its parent's.
type Propagator struct {
	ratio float64
	model ElevationModel
}

// NewPropagator creates a propagator. ratio divides every raw elevation
// delta before it is added to the parent's height and must be positive.
func NewPropagator(ratio float64, model ElevationModel) (Propagator, error) {
	if ratio <= 0 {
		return Propagator{}, fmt.Errorf("%w: elevation ratio %v must be positive", ErrInvalidConfig, ratio)
	}
	if model != ModelObserved && model != ModelIntended {
		return Propagator{}, fmt.Errorf("%w: unknown elevation model %d", ErrInvalidConfig, model)
	}
	return Propagator{ratio: ratio, model: model}, nil
}

// Ratio returns the perturbation ratio.
func (p Propagator) Ratio() float64 {
	return p.ratio
}

// Model returns the probability model in use.
func (p Propagator) Model() ElevationModel {
	return p.model
}

// Seed marks c as a traversal origin: neutral tier at zero height.
func (p Propagator) Seed(c *Cell) {
	c.SetElevation(Neutral, 0, 0)
}

// Propagate assigns child's elevation by one step of the tier walk from
// parent. A child that already has an elevation is left untouched and
// false is returned.
func (p Propagator) Propagate(parent, child *Cell, rng *rand.Rand) bool {
	if child.Elevated() {
		return false
	}
	tier, raw := p.Step(parent.Tier(), rng)
	offset := raw / p.ratio
	return child.SetElevation(tier, offset, parent.Height()+offset)
}

// Step draws the next tier and its raw (unscaled) elevation.
func (p Propagator) Step(from Tier, rng *rand.Rand) (Tier, float64) {
	if p.stays(rng.Float64()) {
		return from, float64(from)
	}

	switch from {
	case VeryLow:
		return Low, rawFor(Low, rng)
	case VeryHigh:
		return High, rawFor(High, rng)
	case Low:
		if p.returns(rng.Float64()) {
			return Neutral, 0
		}
		return VeryLow, rawFor(VeryLow, rng)
	case High:
		if p.returns(rng.Float64()) {
			return Neutral, 0
		}
		return VeryHigh, rawFor(VeryHigh, rng)
	case Neutral:
		if rng.Float64() < 0.5 {
			return High, rawFor(High, rng)
		}
		return Low, rawFor(Low, rng)
	default:
		return from, float64(from)
	}
}

func (p Propagator) stays(draw float64) bool {
	if p.model == ModelObserved {
		return draw == stayChance
	}
	return draw < stayChance
}

func (p Propagator) returns(draw float64) bool {
	if p.model == ModelObserved {
		return false
	}
	return draw < returnChance
}

// rawFor perturbs a tier's nominal value within its band.
func rawFor(t Tier, rng *rand.Rand) float64 {
	var lo, hi int
	switch t {
	case VeryLow:
		lo, hi = -10, 15
	case Low:
		lo, hi = -30, 10
	case High:
		lo, hi = -10, 30
	case VeryHigh:
		lo, hi = -15, 10
	default:
		return float64(t)
	}
	return float64(int(t) + lo + rng.Intn(hi-lo))
}
