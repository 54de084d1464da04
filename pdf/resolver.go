package pdf

import (
	"fmt"
	"sync"
)

// maxDerefDepth bounds reference chains so cycles cannot loop forever.
const maxDerefDepth = 32

// Resolver turns an indirect reference into the referenced object.
// Implementations may perform I/O and may fail.
type Resolver interface {
	Resolve(ref Ref) (Object, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(Ref) (Object, error)

// Resolve calls f(ref).
func (f ResolverFunc) Resolve(ref Ref) (Object, error) { return f(ref) }

// Deref follows o while it is a Ref. Direct objects are returned as is.
func Deref(r Resolver, o Object) (Object, error) {
	for range maxDerefDepth {
		ref, ok := o.(Ref)
		if !ok {
			return o, nil
		}
		if r == nil {
			return nil, &Error{Op: "resolve", Ref: ref, Err: ErrMissingObject}
		}
		next, err := r.Resolve(ref)
		if err != nil {
			return nil, &Error{Op: "resolve", Ref: ref, Err: err}
		}
		o = next
	}
	return nil, &Error{Op: "resolve", Err: fmt.Errorf("%w: reference chain too deep", ErrMalformed)}
}

// DerefDict resolves o and requires a dictionary. A stream's dictionary
// is accepted as well.
func DerefDict(r Resolver, o Object) (Dict, error) {
	v, err := Deref(r, o)
	if err != nil {
		return nil, err
	}
	switch d := v.(type) {
	case Dict:
		return d, nil
	case *Stream:
		return d.Dict, nil
	case nil, Null:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: want dictionary, got %s", ErrMalformed, Format(v))
}

// DerefStream resolves o and requires a stream.
func DerefStream(r Resolver, o Object) (*Stream, error) {
	v, err := Deref(r, o)
	if err != nil {
		return nil, err
	}
	s, ok := v.(*Stream)
	if !ok {
		return nil, fmt.Errorf("%w: want stream, got %s", ErrMalformed, Format(v))
	}
	return s, nil
}

// MemResolver is an in-memory Resolver. It is safe for concurrent use.
type MemResolver struct {
	mu      sync.RWMutex
	objects map[Ref]Object
	next    uint32
	calls   map[Ref]int
}

// NewMemResolver returns an empty MemResolver.
func NewMemResolver() *MemResolver {
	return &MemResolver{
		objects: make(map[Ref]Object),
		calls:   make(map[Ref]int),
	}
}

// Add stores o under a fresh reference and returns it.
func (m *MemResolver) Add(o Object) Ref {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	ref := Ref{Num: m.next}
	m.objects[ref] = o
	return ref
}

// Set stores o under ref, replacing any previous object.
func (m *MemResolver) Set(ref Ref, o Object) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[ref] = o
	if ref.Num > m.next {
		m.next = ref.Num
	}
}

// Resolve implements Resolver.
func (m *MemResolver) Resolve(ref Ref) (Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[ref]++
	o, ok := m.objects[ref]
	if !ok {
		return nil, ErrMissingObject
	}
	return o, nil
}

// Calls returns how many times ref has been resolved.
func (m *MemResolver) Calls(ref Ref) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[ref]
}
