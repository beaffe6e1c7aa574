// Package entityindex implements the in-memory entity collection:
// insertion-ordered by-source/by-type views, normalized exactly once per
// entity, atomically swapped on refresh.
package entityindex

import (
	"sync/atomic"

	"github.com/watchlist/screening-engine/internal/sanctionsdata"
)

// generation is one immutable snapshot of the index contents.
type generation struct {
	all      []*sanctionsdata.Entity
	bySource map[sanctionsdata.Source][]*sanctionsdata.Entity
	byType   map[sanctionsdata.EntityType][]*sanctionsdata.Entity
	seq      uint64
}

// Index is the in-memory entity index. The zero value is not usable; use
// New. Index is safe for concurrent use: reads never block on writes and
// always observe a complete generation (no partial visibility).
type Index struct {
	gen     atomic.Pointer[generation]
	nextSeq uint64
}

// New returns an empty Index.
func New() *Index {
	idx := &Index{}
	idx.gen.Store(&generation{
		bySource: map[sanctionsdata.Source][]*sanctionsdata.Entity{},
		byType:   map[sanctionsdata.EntityType][]*sanctionsdata.Entity{},
	})
	return idx
}

// AddAll normalizes (if not already prepared) and appends entities to the
// current generation, preserving insertion order. AddAll is not safe to
// call concurrently with itself or with ReplaceAll; callers build a
// generation off the serving path and publish it with ReplaceAll.
func (idx *Index) AddAll(entities []*sanctionsdata.Entity) {
	cur := idx.gen.Load()
	next := cloneGeneration(cur)
	appendEntities(next, entities)
	idx.nextSeq++
	next.seq = idx.nextSeq
	idx.gen.Store(next)
}

// ReplaceAll atomically swaps in a brand-new generation built from
// entities. Readers holding the old generation (via GetAll/GetBySource/...)
// continue to observe it until their call returns; the next call observes
// the new generation. Partial visibility never occurs.
func (idx *Index) ReplaceAll(entities []*sanctionsdata.Entity) {
	next := &generation{
		bySource: map[sanctionsdata.Source][]*sanctionsdata.Entity{},
		byType:   map[sanctionsdata.EntityType][]*sanctionsdata.Entity{},
	}
	appendEntities(next, entities)
	idx.nextSeq++
	next.seq = idx.nextSeq
	idx.gen.Store(next)
}

// Clear atomically swaps in an empty generation.
func (idx *Index) Clear() {
	idx.ReplaceAll(nil)
}

// GetAll returns all entities in insertion order.
func (idx *Index) GetAll() []*sanctionsdata.Entity {
	return idx.gen.Load().all
}

// GetBySource returns entities tagged with source, in insertion order.
func (idx *Index) GetBySource(source sanctionsdata.Source) []*sanctionsdata.Entity {
	return idx.gen.Load().bySource[source]
}

// GetByType returns entities of the given type, in insertion order.
func (idx *Index) GetByType(t sanctionsdata.EntityType) []*sanctionsdata.Entity {
	return idx.gen.Load().byType[t]
}

// Size returns the number of entities in the current generation.
func (idx *Index) Size() int {
	return len(idx.gen.Load().all)
}

// Generation returns a monotonically increasing counter identifying the
// currently served generation, bumped on every AddAll/ReplaceAll/Clear.
func (idx *Index) Generation() uint64 {
	return idx.gen.Load().seq
}

func appendEntities(g *generation, entities []*sanctionsdata.Entity) {
	for _, e := range entities {
		if !e.IsPrepared() {
			e.Prepare()
		}
		g.all = append(g.all, e)
		g.bySource[e.Source] = append(g.bySource[e.Source], e)
		g.byType[e.Type] = append(g.byType[e.Type], e)
	}
}

func cloneGeneration(g *generation) *generation {
	next := &generation{
		all:      append([]*sanctionsdata.Entity{}, g.all...),
		bySource: map[sanctionsdata.Source][]*sanctionsdata.Entity{},
		byType:   map[sanctionsdata.EntityType][]*sanctionsdata.Entity{},
	}
	for k, v := range g.bySource {
		next.bySource[k] = append([]*sanctionsdata.Entity{}, v...)
	}
	for k, v := range g.byType {
		next.byType[k] = append([]*sanctionsdata.Entity{}, v...)
	}
	return next
}
