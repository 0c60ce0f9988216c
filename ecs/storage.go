package ecs

import (
	"reflect"
	"slices"
	"strings"
	"unsafe"
)

// Storage owns every entity, component and singleton of one world.
type Storage struct {
	registry   *ComponentRegistry
	archetypes map[uint32]*Archetype
	order      []*Archetype
	signatures map[string]uint32
	singletons map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty storage whose component types come from
// registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: make(map[uint32]*Archetype),
		signatures: make(map[string]uint32),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates an entity from the given component values. Values may be
// passed directly or by pointer; the storage keeps its own copy.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn an entity without components")
	}
	types := componentTypes(components)
	for i := 1; i < len(types); i++ {
		if types[i] == types[i-1] {
			panic("ecs: duplicate component type " + types[i].String())
		}
	}
	return s.archetypeFor(types).spawn(components)
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	key := signature(types)
	if id, ok := s.signatures[key]; ok {
		return s.archetypes[id]
	}
	id := uint32(len(s.order) + 1)
	a := newArchetype(id, types, s.registry)
	s.signatures[key] = id
	s.archetypes[id] = a
	s.order = append(s.order, a)
	return a
}

// Archetype returns the archetype holding exactly the given component types,
// or nil when no entity with that combination was ever spawned.
func (s *Storage) Archetype(types ...reflect.Type) *Archetype {
	sorted := slices.Clone(types)
	sortTypes(sorted)
	id, ok := s.signatures[signature(sorted)]
	if !ok {
		return nil
	}
	return s.archetypes[id]
}

// Archetypes returns all archetypes in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.order
}

// Delete removes the entity. Deleting an unknown or already deleted id is a
// no-op.
func (s *Storage) Delete(id EntityId) {
	a, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !a.alive(id.Index()) {
		return
	}
	a.delete(id.Index())
}

// Alive reports whether id names a live entity. It cannot tell a deleted
// entity from a newer one spawned into the same slot.
func (s *Storage) Alive(id EntityId) bool {
	a, ok := s.archetypes[id.ArchetypeId()]
	return ok && a.alive(id.Index())
}

// GetComponent returns a pointer to the component of type t, or nil.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	a, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return a.component(id.Index(), t)
}

// HasComponent reports whether the entity's archetype includes t.
func (s *Storage) HasComponent(id EntityId, t reflect.Type) bool {
	a, ok := s.archetypes[id.ArchetypeId()]
	return ok && a.alive(id.Index()) && a.HasComponent(t)
}

// CreateEntityRef returns the ref for id, reusing a live one if it exists.
// Returns nil for dead entities.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	a, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !a.alive(id.Index()) {
		return nil
	}
	return a.ref(id)
}

// ResolveEntityRef returns the current id of the referenced entity.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Valid() {
		return 0, false
	}
	return ref.Id, true
}

// Compact packs every archetype. Raw EntityIds held outside the storage are
// invalid afterwards; EntityRefs are updated.
func (s *Storage) Compact() {
	for _, a := range s.order {
		a.compact()
	}
}

// AddSingleton stores value as the singleton of its type. An existing
// singleton is overwritten in place, so outstanding handles see the new value.
// The value must not be a pointer.
func (s *Storage) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	if t == nil || t.Kind() == reflect.Pointer {
		panic("ecs: singletons must be non-pointer values")
	}
	if entry := s.singletons[t]; entry != nil {
		entry.value.Elem().Set(reflect.ValueOf(value))
		return
	}
	v := reflect.New(t)
	v.Elem().Set(reflect.ValueOf(value))
	s.singletons[t] = &singletonEntry{value: v, dataPtr: v.UnsafePointer()}
}

// ReadSingleton points *out at the stored singleton. out must be a pointer to
// a pointer, e.g. **Camera. Returns false when no such singleton exists.
func (s *Storage) ReadSingleton(out any) bool {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Pointer || target.Elem().Kind() != reflect.Pointer {
		panic("ecs: ReadSingleton needs a pointer to a pointer")
	}
	entry := s.singletons[target.Elem().Type().Elem()]
	if entry == nil {
		return false
	}
	target.Elem().Set(entry.value)
	return true
}

func (s *Storage) singletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// ComponentReader is satisfied by Storage and by anything else that can look
// up a component for an entity.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the T component of the entity or nil.
func ReadComponent[T any](r ComponentReader, id EntityId) *T {
	c, _ := r.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return c
}

func componentType(c any) reflect.Type {
	t := reflect.TypeOf(c)
	if t == nil {
		panic("ecs: nil component")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic("ecs: components cannot be pointers, maps, channels or functions")
	}
	return t
}

func componentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, len(components))
	for i, c := range components {
		types[i] = componentType(c)
	}
	sortTypes(types)
	return types
}

func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(typeKey(a), typeKey(b))
	})
}

// typeKey includes the package path so equally named types from two packages
// do not collide.
func typeKey(t reflect.Type) string {
	return t.PkgPath() + "." + t.String()
}

func signature(sorted []reflect.Type) string {
	var b strings.Builder
	for i, t := range sorted {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(typeKey(t))
	}
	return b.String()
}
