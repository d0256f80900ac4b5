package core

// Balance estimates the core's energy flow per drain interval.
type Balance struct {
	Generation uint64 // Estimated output of active generators
	Drain      uint64 // Current passive drain
	Net        int64  // Generation minus drain
	Mode       Mode
	Fraction   float64
}

// EstimatedGeneration sums the configured per-level output of active generators.
func (e *Engine) EstimatedGeneration(c *Call, s *EquipmentState) uint64 {
	c = ensureCall(c)
	var total float64
	for _, id := range s.Installed() {
		if !e.reg.IsGenerator(id) {
			continue
		}
		per, ok := e.generation[id]
		if !ok {
			continue
		}
		total += per * float64(e.EffectiveLevel(c, s, id))
	}
	return floorNonNeg(total)
}

// Balance reports estimated generation against passive drain.
func (e *Engine) Balance(c *Call, s *EquipmentState) Balance {
	c = ensureCall(c)
	gen := e.EstimatedGeneration(c, s)
	drain := e.PassiveDrain(c, s).Final
	fraction := e.Fraction(c, s)
	return Balance{
		Generation: gen,
		Drain:      drain,
		Net:        int64(gen) - int64(drain),
		Mode:       ModeFor(e.cfg.Depletion, s.Energy, fraction),
		Fraction:   fraction,
	}
}
