package aggregate

import "github.com/jgoulah/meterreport/pkg/models"

// Campus holds every building of a run in processing order
type Campus struct {
	buildings []*Building
	index     map[string]int
}

// NewCampus creates an empty campus
func NewCampus() *Campus {
	return &Campus{index: make(map[string]int)}
}

// Add records a building. A building with a name already seen replaces the
// earlier one but keeps its position.
func (c *Campus) Add(b *Building) {
	if i, ok := c.index[b.Name]; ok {
		c.buildings[i] = b
		return
	}
	c.index[b.Name] = len(c.buildings)
	c.buildings = append(c.buildings, b)
}

// Buildings returns the buildings in processing order
func (c *Campus) Buildings() []*Building {
	return c.buildings
}

// Summaries returns the present summaries in processing order
func (c *Campus) Summaries() []models.Summary {
	var out []models.Summary
	for _, b := range c.buildings {
		if s := b.Summary(); s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// Totals is the campus-wide rollup of all present summaries
type Totals struct {
	Buildings int
	Readings  int
	KWh       float64
}

// Totals sums the raw readings of every building
func (c *Campus) Totals() Totals {
	var t Totals
	var kwh float64
	for _, b := range c.buildings {
		if len(b.Readings) == 0 {
			continue
		}
		t.Buildings++
		t.Readings += len(b.Readings)
		for _, r := range b.Readings {
			kwh += r.KWh
		}
	}
	t.KWh = Round2(kwh)
	return t
}
