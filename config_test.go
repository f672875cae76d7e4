package yuletree

import "testing"

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.FoliageCount != 10000 || c.OrnamentCount != 250 {
		t.Errorf("counts = %d/%d", c.FoliageCount, c.OrnamentCount)
	}
	if c.TreeHeight != 15 || c.TreeRadius != 6.5 || c.ScatterRadius != 30 {
		t.Errorf("geometry = %v/%v/%v", c.TreeHeight, c.TreeRadius, c.ScatterRadius)
	}
	if c.GiftProbability != 0.35 || c.FoliageExponent != 1.8 || c.OrnamentExponent != 1.4 {
		t.Errorf("policy = %v/%v/%v", c.GiftProbability, c.FoliageExponent, c.OrnamentExponent)
	}
	if c.FoliageLambda != 1.2 || c.OrnamentLambda != 1.5 || c.StarLambda != 1.2 {
		t.Errorf("lambdas = %v/%v/%v", c.FoliageLambda, c.OrnamentLambda, c.StarLambda)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfigOverridesSurvive(t *testing.T) {
	c := Config{FoliageCount: 42, TreeHeight: 10}.withDefaults()
	if c.FoliageCount != 42 || c.TreeHeight != 10 || c.TreeRadius != 6.5 {
		t.Errorf("withDefaults = %+v", c)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative foliage", Config{FoliageCount: -1}},
		{"negative ornaments", Config{OrnamentCount: -5}},
		{"negative height", Config{TreeHeight: -15}},
		{"probability above one", Config{GiftProbability: 1.5}},
		{"negative exponent", Config{FoliageExponent: -1}},
		{"negative lambda", Config{StarLambda: -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDerivedClassConfigs(t *testing.T) {
	c := DefaultConfig()
	o := c.ornaments()
	assertNear(t, "ornament radius", o.Radius, 6.5*1.05)
	assertNear(t, "ornament scatter", o.ScatterRadius, 39)
	f := c.foliage()
	if f.Count != 10000 || f.Exponent != 1.8 {
		t.Errorf("foliage = %+v", f)
	}
	if c.star().TreeHeight != 15 {
		t.Errorf("star = %+v", c.star())
	}
}
