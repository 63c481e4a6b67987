package objc

import (
	"fmt"
	"sync"
	"sync/atomic"

	xsync "github.com/puzpuzpuz/xsync/v2"
)

type definition struct {
	once  sync.Once
	class atomic.Uintptr
	super Class
}

func (d *definition) registered() Class { return Class(d.class.Load()) }

type _ClassRegistry struct {
	defs map[string]*definition
	mu   *xsync.RBMutex
}

var classRegistry = newClassRegistry()

func newClassRegistry() *_ClassRegistry {
	return &_ClassRegistry{
		defs: make(map[string]*definition),
		mu:   xsync.NewRBMutex(),
	}
}

func (r *_ClassRegistry) lookup(name string) *definition {
	rtok := r.mu.RLock()
	defer r.mu.RUnlock(rtok)
	return r.defs[name]
}

func (r *_ClassRegistry) acquire(name string, super Class) *definition {
	if def := r.lookup(name); def != nil {
		return def
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if def, ok := r.defs[name]; ok {
		return def
	}
	def := &definition{super: super}
	r.defs[name] = def
	return def
}

// DefineClass allocates, builds and registers the class name exactly once,
// even under concurrent callers, and returns it. Later calls with the same
// name return the registered class without running build again.
//
// It panics if the runtime already has a class called name that was not
// defined here, if a later call names a different superclass, or if build
// panics. In the last case the pair is disposed and the definition is
// poisoned: every later call panics too.
func DefineClass(name string, super Class, build func(*ClassPair)) Class {
	def := classRegistry.acquire(name, super)
	if def.super != super {
		panic(fmt.Sprintf("objc: class %q already defined with superclass %s", name, def.super))
	}
	def.once.Do(func() {
		cp, ok := AllocateClassPair(super, name, 0)
		if !ok {
			panic(fmt.Sprintf("objc: class %q already exists", name))
		}
		done := false
		defer func() {
			if !done {
				cp.Dispose()
			}
		}()
		if build != nil {
			build(cp)
		}
		def.class.Store(uintptr(cp.Register()))
		done = true
	})
	cls := def.registered()
	if cls.IsNil() {
		panic(fmt.Sprintf("objc: definition of class %q failed", name))
	}
	return cls
}

// DefinedClass returns the class DefineClass registered under name. It is
// None while the definition is still being built.
func DefinedClass(name string) Optional[Class] {
	def := classRegistry.lookup(name)
	if def == nil {
		return None[Class]()
	}
	return OptionalOf(def.registered())
}
