package ecs

import (
	"iter"
	"reflect"
	"weak"

	"github.com/kamstrup/intmap"
)

// Archetype groups every entity that carries exactly the same set of
// component types. Each type gets its own column; a given entity lives at the
// same slot in all of them.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
	byType  map[reflect.Type]int
	refs    *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
		byType:  make(map[reflect.Type]int, len(types)),
		refs:    intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}
	for i, t := range types {
		a.columns[i] = registry.newColumn(t)
		a.byType[t] = i
	}
	return a
}

// ID returns the archetype id embedded in the ids of its entities.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types of this archetype, sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// HasComponent reports whether t is part of this archetype.
func (a *Archetype) HasComponent(t reflect.Type) bool {
	_, ok := a.byType[t]
	return ok
}

// spawn appends one value per column. components must contain exactly one
// value for every type of the archetype.
func (a *Archetype) spawn(components []any) EntityId {
	slot := -1
	for _, c := range components {
		col := a.byType[componentType(c)]
		s := a.columns[col].Append(c)
		if slot != -1 && s != slot {
			panic("ecs: archetype columns out of step")
		}
		slot = s
	}
	return NewEntityId(a.id, uint32(slot))
}

// component returns a pointer to the component of type t at slot, or nil.
func (a *Archetype) component(slot uint32, t reflect.Type) any {
	col, ok := a.byType[t]
	if !ok {
		return nil
	}
	return a.columns[col].Get(int(slot))
}

func (a *Archetype) alive(slot uint32) bool {
	return len(a.columns) > 0 && a.columns[0].Has(int(slot))
}

func (a *Archetype) delete(slot uint32) {
	id := NewEntityId(a.id, slot)
	if wp, ok := a.refs.Get(id); ok {
		if ref := wp.Value(); ref != nil {
			ref.invalidate()
		}
		a.refs.Del(id)
	}
	for _, col := range a.columns {
		col.Delete(int(slot))
	}
}

func (a *Archetype) ref(id EntityId) *EntityRef {
	if wp, ok := a.refs.Get(id); ok {
		if ref := wp.Value(); ref != nil {
			return ref
		}
	}
	ref := &EntityRef{Id: id, Archetype: a}
	a.refs.Put(id, weak.Make(ref))
	return ref
}

// compact packs every column and rewrites outstanding EntityRefs to the new
// slots. Dead weak pointers are dropped on the way.
func (a *Archetype) compact() {
	if len(a.columns) == 0 {
		return
	}
	moved := a.columns[0].Compact()
	for _, col := range a.columns[1:] {
		col.Compact()
	}

	live := intmap.New[EntityId, weak.Pointer[EntityRef]](a.refs.Len())
	a.refs.ForEach(func(oldId EntityId, wp weak.Pointer[EntityRef]) bool {
		ref := wp.Value()
		if ref == nil {
			return true
		}
		if slot, ok := moved[int(oldId.Index())]; ok {
			ref.Id = NewEntityId(a.id, uint32(slot))
			live.Put(ref.Id, wp)
		}
		return true
	})
	a.refs = live
}

// Entities yields the ids of all live entities in slot order.
func (a *Archetype) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for slot := range a.columns[0].Slots() {
			if !yield(NewEntityId(a.id, uint32(slot))) {
				return
			}
		}
	}
}
