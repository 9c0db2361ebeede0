package catalog

import (
	"sync/atomic"

	"github.com/teranos/dimensio/units"
)

// Holder publishes the current registry. Readers always see a complete
// registry; a reload swaps the pointer only after the new one is built.
type Holder struct {
	current atomic.Pointer[units.Registry]
}

// NewHolder creates a holder publishing reg.
func NewHolder(reg *units.Registry) *Holder {
	h := &Holder{}
	h.current.Store(reg)
	return h
}

// Load returns the current registry.
func (h *Holder) Load() *units.Registry {
	return h.current.Load()
}

// Swap publishes reg and returns the registry it replaced.
func (h *Holder) Swap(reg *units.Registry) *units.Registry {
	return h.current.Swap(reg)
}
