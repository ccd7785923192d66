package pheromone

import "sync"

// Channel is the shared, mutable signal pool all agents read and write.
// It is the only object shared across the whole population, so every
// mutation happens under one lock; the absorption feedback increment is an
// atomic read-modify-write.
type Channel struct {
	mu sync.RWMutex

	pheromones []*Pheromone
	byID       map[string]*Pheromone

	density           float64
	criticalThreshold float64
	transitioned      bool
	transitionStep    int
}

// NewChannel creates an empty channel with the given critical threshold.
func NewChannel(criticalThreshold float64) *Channel {
	return &Channel{
		byID:              make(map[string]*Pheromone),
		criticalThreshold: clamp01(criticalThreshold),
		transitionStep:    -1,
	}
}

// Emit appends a pheromone to the channel. Pheromones are append-only;
// once emitted they are never removed.
func (c *Channel) Emit(p *Pheromone) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p.Confidence = clamp01(p.Confidence)
	p.Strength = clamp01(p.Strength)
	c.pheromones = append(c.pheromones, p)
	c.byID[p.ID] = p
}

// Boost applies the absorption feedback to the source pheromone:
// strength += 0.1, capped at 1.0. Returns false for unknown ids.
func (c *Channel) Boost(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.byID[id]
	if !ok {
		return false
	}
	p.Strength = clamp01(p.Strength + 0.1)
	return true
}

// Link records a lineage connection from pheromone id to parent id.
func (c *Channel) Link(id, parentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.byID[id]
	if !ok {
		return
	}
	if _, ok := c.byID[parentID]; !ok {
		return
	}
	p.Connections[parentID] = struct{}{}
}

// Decay ages every pheromone by multiplying strength with the given
// factor in (0,1]. Decay is owned by the orchestrator, not by absorption.
func (c *Channel) Decay(factor float64) {
	if factor <= 0 || factor > 1 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.pheromones {
		p.Strength = clamp01(p.Strength * factor)
	}
}

// Recompute derives the channel density and returns it. It must run once
// per tick before any agent reads the channel.
//
// Density is a saturating function of pheromone count and mean strength:
//
//	density = (n / (n + 25)) * (0.4 + 0.6 * meanStrength)
//
// which is monotone non-decreasing in both inputs and clamped to [0,1].
func (c *Channel) Recompute() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := float64(len(c.pheromones))
	if n == 0 {
		c.density = 0
		return 0
	}
	var total float64
	for _, p := range c.pheromones {
		total += p.Strength
	}
	mean := total / n
	c.density = clamp01((n / (n + 25)) * (0.4 + 0.6*mean))
	return c.density
}

// Density returns the most recently computed density.
func (c *Channel) Density() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.density
}

// CheckPhaseTransition marks the one-time phase transition if the current
// density has reached the critical threshold. The first trigger records
// the step; afterwards the call is a no-op. Returns whether the
// transition has occurred (now or earlier).
func (c *Channel) CheckPhaseTransition(step int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.transitioned {
		return true
	}
	if c.density >= c.criticalThreshold {
		c.transitioned = true
		c.transitionStep = step
	}
	return c.transitioned
}

// PhaseTransitioned reports whether the phase transition has occurred.
// Once true it never resets.
func (c *Channel) PhaseTransitioned() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.transitioned
}

// TransitionStep returns the step at which the transition occurred.
// The bool is false while the swarm is still pre-transition.
func (c *Channel) TransitionStep() (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.transitioned {
		return 0, false
	}
	return c.transitionStep, true
}

// CriticalThreshold returns the configured critical density.
func (c *Channel) CriticalThreshold() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.criticalThreshold
}

// Len returns the number of pheromones in the channel.
func (c *Channel) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pheromones)
}

// Views returns immutable copies of every pheromone, in emission order.
func (c *Channel) Views() []View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]View, len(c.pheromones))
	for i, p := range c.pheromones {
		out[i] = View{
			ID:         p.ID,
			AgentID:    p.AgentID,
			Content:    p.Content,
			Domain:     p.Domain,
			Confidence: p.Confidence,
			Strength:   p.Strength,
		}
	}
	return out
}

// MeanStrength returns the average pheromone strength, 0 when empty.
func (c *Channel) MeanStrength() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.pheromones) == 0 {
		return 0
	}
	var total float64
	for _, p := range c.pheromones {
		total += p.Strength
	}
	return total / float64(len(c.pheromones))
}
