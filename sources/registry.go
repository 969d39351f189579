package sources

import (
	"github.com/mlange-42/ark/ecs"
)

// Registry owns the emitter world. It is not safe for concurrent use: the
// goroutine that drives ticks owns it.
type Registry struct {
	world   *ecs.World
	mapper  *ecs.Map2[Position, Emitter]
	filter  *ecs.Filter2[Position, Emitter]
	pointer ecs.Entity
}

// NewRegistry creates an empty registry with an inactive pointer emitter.
func NewRegistry() *Registry {
	world := ecs.NewWorld()
	r := &Registry{
		world:  world,
		mapper: ecs.NewMap2[Position, Emitter](world),
		filter: ecs.NewFilter2[Position, Emitter](world),
	}
	r.pointer = r.mapper.NewEntity(&Position{}, &Emitter{Kind: KindPointer})
	return r
}

// AddTorch places a persistent emitter.
func (r *Registry) AddTorch(x, y, radius, power float32) ecs.Entity {
	pos := Position{X: x, Y: y}
	em := Emitter{Kind: KindTorch, Radius: radius, Power: power, Active: true}
	return r.mapper.NewEntity(&pos, &em)
}

// SetPointer moves the pointer emitter and sets whether it is held down.
func (r *Registry) SetPointer(x, y float32, down bool, radius, power float32) {
	pos, em := r.mapper.Get(r.pointer)
	pos.X, pos.Y = x, y
	em.Active = down
	em.Radius = radius
	em.Power = power
}

// RemoveTorchesNear removes every torch within radius of (x, y) and returns
// how many were removed.
func (r *Registry) RemoveTorchesNear(x, y, radius float32) int {
	// Collect first: the world is locked while a query is open
	var toRemove []ecs.Entity
	query := r.filter.Query()
	for query.Next() {
		pos, em := query.Get()
		if em.Kind != KindTorch {
			continue
		}
		dx, dy := pos.X-x, pos.Y-y
		if dx*dx+dy*dy <= radius*radius {
			toRemove = append(toRemove, query.Entity())
		}
	}

	for _, e := range toRemove {
		r.world.RemoveEntity(e)
	}
	return len(toRemove)
}

// Clear removes every torch. The pointer survives, released.
func (r *Registry) Clear() {
	var toRemove []ecs.Entity
	query := r.filter.Query()
	for query.Next() {
		_, em := query.Get()
		if em.Kind == KindTorch {
			toRemove = append(toRemove, query.Entity())
		}
	}
	for _, e := range toRemove {
		r.world.RemoveEntity(e)
	}
	_, em := r.mapper.Get(r.pointer)
	em.Active = false
}

// Torches returns the number of placed torches.
func (r *Registry) Torches() int {
	n := 0
	query := r.filter.Query()
	for query.Next() {
		_, em := query.Get()
		if em.Kind == KindTorch {
			n++
		}
	}
	return n
}

// Snapshot returns the active emitters as a fresh slice. The result is not
// touched again by the registry, so a tick can hold it as immutable input.
func (r *Registry) Snapshot() []Source {
	var out []Source
	query := r.filter.Query()
	for query.Next() {
		pos, em := query.Get()
		if !em.Active || em.Radius <= 0 {
			continue
		}
		out = append(out, Source{X: pos.X, Y: pos.Y, Radius: em.Radius, Power: em.Power, Kind: em.Kind})
	}
	return out
}
