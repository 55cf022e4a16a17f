package reactor

import (
	"reflect"
	"sync"

	"github.com/dshills/keystorm/internal/engine/state"
)

type entry struct {
	generation uint64
	sourceGen  uint64 // generation at which source last actually changed
	value      any
	source     any
}

type definition struct {
	source  func(r *Reactor) any
	compute func(source any) any
}

// Reactor holds a cloned State for the current frame plus the memoized
// derived values computed from it (spec §3 "Reactor holds a cloned State").
type Reactor struct {
	mu         sync.Mutex
	state      state.State
	generation uint64
	cache      map[reflect.Type]entry
	defs       map[reflect.Type]definition
}

// New returns a Reactor with every built-in derived value (spec §4.3's
// list) registered, holding an empty initial State.
func New() *Reactor {
	r := &Reactor{
		cache: make(map[reflect.Type]entry),
		defs:  make(map[reflect.Type]definition),
	}
	registerBuiltins(r)
	return r
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Register associates a derivable type T with its source reader and
// compute step. source reads whatever T depends on — other derivable
// types (via Get[U](r)) or fields of the held State — and returns an
// opaque, comparable-by-reflect.DeepEqual snapshot. compute derives T's
// value from that snapshot alone, so repeated calls with an
// unchanged source are pure.
func Register[T any](r *Reactor, source func(r *Reactor) any, compute func(src any) T) {
	t := typeOf[T]()
	r.defs[t] = definition{
		source:  source,
		compute: func(src any) any { return compute(src) },
	}
}

// LoadState replaces the held State and bumps the generation counter
// (wrap-around tolerated), per spec §4.3's load_state.
func (r *Reactor) LoadState(s state.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = s
	r.generation++
}

// State returns the Reactor's currently held State.
func (r *Reactor) State() state.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Get returns the current, possibly-cached value of derivable type T,
// computing it (and its whole source chain) as needed per the algorithm in
// spec §4.3.
func Get[T any](r *Reactor) T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(typeOf[T]()).(T)
}

// GetUpdate returns (value, true) iff T's source differs from the source
// that produced the last cached value — i.e. T actually changed this
// generation, not merely that the generation counter advanced. Used by the
// renderer to redraw only the panes whose backing data changed.
func GetUpdate[T any](r *Reactor) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := typeOf[T]()
	val := r.get(t)
	e := r.cache[t]
	return val.(T), e.sourceGen == r.generation
}

// getValue is the recursive-safe counterpart to Get, for use inside a
// registered source function — those run while the caller's lock is
// already held, so they must not call the locking Get.
func getValue[T any](r *Reactor) T {
	return r.get(typeOf[T]()).(T)
}

func (r *Reactor) get(t reflect.Type) any {
	def, ok := r.defs[t]
	if !ok {
		panic("reactor: no derivable type registered for " + t.String())
	}
	src := def.source(r)

	if e, ok := r.cache[t]; ok {
		if e.generation == r.generation {
			return e.value
		}
		if reflect.DeepEqual(e.source, src) {
			e.generation = r.generation
			r.cache[t] = e
			return e.value
		}
	}

	val := def.compute(src)
	r.cache[t] = entry{generation: r.generation, sourceGen: r.generation, value: val, source: src}
	return val
}
