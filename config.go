package yuletree

import (
	"errors"
	"fmt"
)

// Default scene constants.
const (
	DefaultFoliageCount     = 10000
	DefaultOrnamentCount    = 250
	DefaultTreeHeight       = 15.0
	DefaultTreeRadius       = 6.5
	DefaultScatterRadius    = 30.0
	DefaultGiftProbability  = 0.35
	DefaultFoliageExponent  = 1.8
	DefaultOrnamentExponent = 1.4
	DefaultFoliageLambda    = 1.2
	DefaultOrnamentLambda   = 1.5
	DefaultStarLambda       = 1.2
)

// FoliageConfig controls the glowing needle cloud.
type FoliageConfig struct {
	// Count is the number of foliage points.
	Count int
	// Height and Radius describe the tree cone.
	Height, Radius float64
	// ScatterRadius is the radius of the scatter sphere.
	ScatterRadius float64
	// Exponent biases the height ratio toward the base (ratio = u^Exponent).
	Exponent float64
	// Lambda is the damping rate of the class progress.
	Lambda float64
}

// OrnamentConfig controls the baubles and gift boxes.
type OrnamentConfig struct {
	// Count is the total number of ornaments across both kinds.
	Count int
	// Height and Radius describe the tree cone. Ornaments sit slightly
	// outside the foliage, so NewScene passes Radius*1.05.
	Height, Radius float64
	// ScatterRadius is the radius of the scatter sphere. NewScene passes
	// the foliage scatter radius times 1.3.
	ScatterRadius float64
	// GiftProbability is the chance an ornament becomes a gift.
	GiftProbability float64
	// Exponent biases the height ratio toward the base.
	Exponent float64
	// Lambda is the damping rate of the class progress.
	Lambda float64
	// GiftScale and BaubleScale are the base scale ranges per kind.
	GiftScale, BaubleScale Range
	// Speed is the range of per-ornament float speed factors.
	Speed Range
}

// StarConfig controls the tree-top star.
type StarConfig struct {
	// TreeHeight positions the star 0.8 above the apex.
	TreeHeight float64
	// ScatterY is the star's height while scattered.
	ScatterY float64
	// Lambda is the damping rate of the star progress.
	Lambda float64
}

// Config is the full scene configuration. Zero-valued fields fall back to the
// defaults, so Config{} describes the stock greeting.
type Config struct {
	// FoliageCount and OrnamentCount fix the particle population.
	FoliageCount, OrnamentCount int
	// TreeHeight and TreeRadius describe the assembled cone.
	TreeHeight, TreeRadius float64
	// ScatterRadius is the radius of the scatter sphere.
	ScatterRadius float64
	// GiftProbability is the chance an ornament becomes a gift.
	GiftProbability float64
	// FoliageExponent and OrnamentExponent bias height toward the base.
	FoliageExponent, OrnamentExponent float64
	// Damping rates per class.
	FoliageLambda, OrnamentLambda, StarLambda float64
	// StartScattered starts the scene in StateScattered instead of the
	// default StateTreeShape.
	StartScattered bool
	// Debug prints per-frame advance timing to stderr.
	Debug bool
}

// DefaultConfig returns the stock greeting configuration with every field
// filled in.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.FoliageCount == 0 {
		c.FoliageCount = DefaultFoliageCount
	}
	if c.OrnamentCount == 0 {
		c.OrnamentCount = DefaultOrnamentCount
	}
	if c.TreeHeight == 0 {
		c.TreeHeight = DefaultTreeHeight
	}
	if c.TreeRadius == 0 {
		c.TreeRadius = DefaultTreeRadius
	}
	if c.ScatterRadius == 0 {
		c.ScatterRadius = DefaultScatterRadius
	}
	if c.GiftProbability == 0 {
		c.GiftProbability = DefaultGiftProbability
	}
	if c.FoliageExponent == 0 {
		c.FoliageExponent = DefaultFoliageExponent
	}
	if c.OrnamentExponent == 0 {
		c.OrnamentExponent = DefaultOrnamentExponent
	}
	if c.FoliageLambda == 0 {
		c.FoliageLambda = DefaultFoliageLambda
	}
	if c.OrnamentLambda == 0 {
		c.OrnamentLambda = DefaultOrnamentLambda
	}
	if c.StarLambda == 0 {
		c.StarLambda = DefaultStarLambda
	}
	return c
}

// Validate reports every invalid field after defaults are applied.
func (c Config) Validate() error {
	c = c.withDefaults()
	var errs []error
	if c.FoliageCount < 0 {
		errs = append(errs, fmt.Errorf("foliage count %d is negative", c.FoliageCount))
	}
	if c.OrnamentCount < 0 {
		errs = append(errs, fmt.Errorf("ornament count %d is negative", c.OrnamentCount))
	}
	if c.TreeHeight < 0 || c.TreeRadius < 0 || c.ScatterRadius < 0 {
		errs = append(errs, fmt.Errorf("geometry must be positive (height %v, radius %v, scatter %v)",
			c.TreeHeight, c.TreeRadius, c.ScatterRadius))
	}
	if c.GiftProbability < 0 || c.GiftProbability > 1 {
		errs = append(errs, fmt.Errorf("gift probability %v outside [0, 1]", c.GiftProbability))
	}
	if c.FoliageExponent < 0 || c.OrnamentExponent < 0 {
		errs = append(errs, fmt.Errorf("density exponents must be positive (%v, %v)",
			c.FoliageExponent, c.OrnamentExponent))
	}
	if c.FoliageLambda < 0 || c.OrnamentLambda < 0 || c.StarLambda < 0 {
		errs = append(errs, fmt.Errorf("damping rates must be positive (%v, %v, %v)",
			c.FoliageLambda, c.OrnamentLambda, c.StarLambda))
	}
	if len(errs) > 0 {
		return fmt.Errorf("yuletree: invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// foliage returns the foliage class config derived from c.
func (c Config) foliage() FoliageConfig {
	return FoliageConfig{
		Count:         c.FoliageCount,
		Height:        c.TreeHeight,
		Radius:        c.TreeRadius,
		ScatterRadius: c.ScatterRadius,
		Exponent:      c.FoliageExponent,
		Lambda:        c.FoliageLambda,
	}
}

// ornaments returns the ornament class config derived from c.
func (c Config) ornaments() OrnamentConfig {
	return OrnamentConfig{
		Count:           c.OrnamentCount,
		Height:          c.TreeHeight,
		Radius:          c.TreeRadius * 1.05,
		ScatterRadius:   c.ScatterRadius * 1.3,
		GiftProbability: c.GiftProbability,
		Exponent:        c.OrnamentExponent,
		Lambda:          c.OrnamentLambda,
	}
}

// star returns the star config derived from c.
func (c Config) star() StarConfig {
	return StarConfig{
		TreeHeight: c.TreeHeight,
		Lambda:     c.StarLambda,
	}
}
