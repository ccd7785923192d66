package agent

import "math/rand"

// Personality holds the four fixed behavioral traits of an agent, each in
// [0,1]. Traits are set at creation from the specialization profile plus a
// small one-time jitter, and never change afterwards.
type Personality struct {
	Curiosity   float64
	Diligence   float64
	Boldness    float64
	Sociability float64
}

// Specializations is the preset label set agents draw from.
var Specializations = []string{
	"concurrency",
	"storage",
	"networking",
	"tooling",
	"testing",
	"performance",
}

// profiles maps each specialization to its baseline personality. The
// jitter applied at creation keeps agents of the same specialization from
// behaving identically.
var profiles = map[string]Personality{
	"concurrency": {Curiosity: 0.7, Diligence: 0.6, Boldness: 0.6, Sociability: 0.4},
	"storage":     {Curiosity: 0.5, Diligence: 0.8, Boldness: 0.4, Sociability: 0.5},
	"networking":  {Curiosity: 0.6, Diligence: 0.5, Boldness: 0.7, Sociability: 0.6},
	"tooling":     {Curiosity: 0.6, Diligence: 0.7, Boldness: 0.5, Sociability: 0.7},
	"testing":     {Curiosity: 0.4, Diligence: 0.9, Boldness: 0.3, Sociability: 0.5},
	"performance": {Curiosity: 0.7, Diligence: 0.7, Boldness: 0.6, Sociability: 0.3},
}

// defaultProfile covers specializations outside the preset list.
var defaultProfile = Personality{Curiosity: 0.5, Diligence: 0.5, Boldness: 0.5, Sociability: 0.5}

// newPersonality returns the baseline profile for the specialization with
// a one-time +-0.1 jitter per trait.
func newPersonality(specialization string, rng *rand.Rand) Personality {
	p, ok := profiles[specialization]
	if !ok {
		p = defaultProfile
	}
	jitter := func(v float64) float64 {
		return clamp01(v + (rng.Float64()-0.5)*0.2)
	}
	return Personality{
		Curiosity:   jitter(p.Curiosity),
		Diligence:   jitter(p.Diligence),
		Boldness:    jitter(p.Boldness),
		Sociability: jitter(p.Sociability),
	}
}

// PickSpecialization draws a specialization from the preset set.
func PickSpecialization(rng *rand.Rand) string {
	return Specializations[rng.Intn(len(Specializations))]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
