package ecs

import (
	"iter"
	"reflect"
)

// column holds every value of one component type inside an archetype.
// Slots are stable until Compact is called.
type column interface {
	Append(item any) int
	Delete(slot int)
	Get(slot int) any
	Has(slot int) bool
	Len() int
	Compact() map[int]int
	Slots() iter.Seq[int]
}

// ComponentRegistry maps component types to the column constructor used to
// store them. Registries can be shared by several Storage values; types can be
// registered after a Storage was created, as long as it happens before the
// first entity carrying that type is spawned.
type ComponentRegistry struct {
	columns map[reflect.Type]func() column
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		columns: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent makes T usable as a component in storages that use r.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.columns[reflect.TypeFor[T]()] = func() column {
		return &blockColumn[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.columns[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	ctor, ok := r.columns[t]
	if !ok {
		panic("ecs: component type " + t.String() + " is not registered")
	}
	return ctor()
}

const blockSize = 64

type block[T any] struct {
	values [blockSize]T
	used   [blockSize]bool
}

// blockColumn stores values in fixed-size heap blocks. Blocks are held by
// pointer so component pointers handed out to views stay valid while new
// entities are appended in the same frame.
type blockColumn[T any] struct {
	blocks []*block[T]
	free   []int
	next   int
	count  int
}

func (c *blockColumn[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		panic("ecs: value of type " + reflect.TypeOf(item).String() + " appended to column of " + reflect.TypeFor[T]().String())
	}

	var slot int
	if n := len(c.free); n > 0 {
		slot = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		slot = c.next
		c.next++
		if slot/blockSize >= len(c.blocks) {
			c.blocks = append(c.blocks, &block[T]{})
		}
	}

	b := c.blocks[slot/blockSize]
	b.values[slot%blockSize] = value
	b.used[slot%blockSize] = true
	c.count++
	return slot
}

func (c *blockColumn[T]) Has(slot int) bool {
	if slot < 0 || slot >= c.next {
		return false
	}
	return c.blocks[slot/blockSize].used[slot%blockSize]
}

func (c *blockColumn[T]) Get(slot int) any {
	if !c.Has(slot) {
		return nil
	}
	return &c.blocks[slot/blockSize].values[slot%blockSize]
}

func (c *blockColumn[T]) Delete(slot int) {
	if !c.Has(slot) {
		return
	}
	b := c.blocks[slot/blockSize]
	var zero T
	b.values[slot%blockSize] = zero
	b.used[slot%blockSize] = false
	c.free = append(c.free, slot)
	c.count--
}

func (c *blockColumn[T]) Len() int {
	return c.count
}

// Compact moves live values to the front and returns old slot -> new slot.
// Pointers obtained before the call are invalidated.
func (c *blockColumn[T]) Compact() map[int]int {
	moved := make(map[int]int, c.count)
	packed := make([]*block[T], (c.count+blockSize-1)/blockSize)
	for i := range packed {
		packed[i] = &block[T]{}
	}

	write := 0
	for slot := range c.Slots() {
		dst := packed[write/blockSize]
		dst.values[write%blockSize] = c.blocks[slot/blockSize].values[slot%blockSize]
		dst.used[write%blockSize] = true
		moved[slot] = write
		write++
	}

	c.blocks = packed
	c.free = nil
	c.next = write
	return moved
}

// Slots yields occupied slots in ascending order.
func (c *blockColumn[T]) Slots() iter.Seq[int] {
	return func(yield func(int) bool) {
		for slot := 0; slot < c.next; slot++ {
			if !c.blocks[slot/blockSize].used[slot%blockSize] {
				continue
			}
			if !yield(slot) {
				return
			}
		}
	}
}
