package ecs

import "fmt"

// EntityId packs the owning archetype (upper 32 bits) and the slot inside
// that archetype (lower 32 bits). Archetype ids start at 1, so the zero
// EntityId never names a live entity. Freed slots are reused, so a raw id
// held past a Delete may later name a different entity; hold an EntityRef
// to detect that.
type EntityId uint64

// NewEntityId builds an EntityId from an archetype id and a slot index.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId returns the archetype half of the id.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index returns the slot half of the id.
func (e EntityId) Index() uint32 {
	return uint32(e)
}

func (e EntityId) String() string {
	return fmt.Sprintf("%d:%d", e.ArchetypeId(), e.Index())
}

// EntityRef is a handle that survives compaction. The storage only keeps a
// weak pointer to it, so a dropped ref costs nothing. A ref whose entity was
// deleted has a zero Id.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

// Valid reports whether the referenced entity is still alive.
func (r *EntityRef) Valid() bool {
	return r != nil && r.Id != 0
}

func (r *EntityRef) invalidate() {
	r.Id = 0
	r.Archetype = nil
}
