package units

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/dimensio/errors"
	"github.com/teranos/dimensio/expr"
)

// Registry holds the atomic units of one DimensionSpace and converts between
// expressions built from them.
//
// The identifier-to-unit mapping is the only mutable state. Register must not
// run concurrently with any other method; build the registry, call Freeze,
// then share it read-only.
type Registry struct {
	space  *DimensionSpace
	units  map[string]*Unit
	parser expr.Parser
	frozen bool
	logger *zap.SugaredLogger
}

// RegistryOption configures a Registry at construction.
type RegistryOption func(*Registry)

// WithLogger sets the registry's logger. A nil logger keeps it silent.
func WithLogger(logger *zap.SugaredLogger) RegistryOption {
	return func(r *Registry) { r.logger = logger }
}

// WithBudget sets the parser iteration budget used for expressions.
func WithBudget(budget int) RegistryOption {
	return func(r *Registry) { r.parser.Budget = budget }
}

// NewRegistry creates an empty registry for space.
func NewRegistry(space *DimensionSpace, opts ...RegistryOption) (*Registry, error) {
	if space == nil {
		return nil, errors.NewUnitError(errors.ErrConfiguration, "registry needs a dimension space")
	}
	r := &Registry{
		space:  space,
		units:  make(map[string]*Unit),
		parser: expr.Parser{Budget: expr.DefaultBudget, KeepCancelled: true},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Space returns the registry's dimension space.
func (r *Registry) Space() *DimensionSpace { return r.space }

// Budget returns the parser iteration budget.
func (r *Registry) Budget() int { return r.parser.Budget }

// Register adds u under its identifier.
func (r *Registry) Register(u *Unit) error {
	if r.frozen {
		return errors.NewUnitError(errors.ErrConfiguration, "registry for %s is frozen", r.space)
	}
	if u == nil {
		return errors.NewUnitError(errors.ErrConfiguration, "cannot register a nil unit")
	}
	if u.space != r.space {
		return errors.NewUnitError(errors.ErrConfiguration,
			"unit %q belongs to %s, registry is for %s", u.identifier, u.space, r.space)
	}

	id := normalizeIdentifier(u.identifier)
	if id == "" {
		return errors.NewUnitError(errors.ErrConfiguration, "cannot register an anonymous unit")
	}
	if !expr.IsAtomic(id) {
		return errors.WithHint(
			errors.NewUnitError(errors.ErrInvalidUnit, "identifier %q is not atomic", id),
			"identifiers may not contain digits, '.', '*', '/', '^', parentheses or whitespace")
	}
	if _, exists := r.units[id]; exists {
		return errors.NewUnitError(errors.ErrDuplicateUnit, "%q is already registered", id)
	}

	if id != u.identifier {
		u = u.withIdentifier(id)
	}
	r.units[id] = u

	if r.logger != nil {
		r.logger.Debugw("Registered unit",
			"unit", id,
			"dimensions", u.dims.String(),
			"space", r.space.Name())
	}
	return nil
}

// Define creates an affine unit and registers it. It is the bulk-load entry
// point used by catalogs.
func (r *Registry) Define(identifier string, dims []float64, scale, offset float64, name string) error {
	u, err := NewAffineUnit(r.space, identifier, dims, scale, offset, WithUnitName(name))
	if err != nil {
		return err
	}
	return r.Register(u)
}

// Lookup returns the unit registered under identifier.
func (r *Registry) Lookup(identifier string) (*Unit, bool) {
	u, ok := r.units[normalizeIdentifier(identifier)]
	return u, ok
}

// IsDefined reports whether s is a registered identifier, or an expression
// that parses and references only registered identifiers. Blank input is
// never defined.
func (r *Registry) IsDefined(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	if _, ok := r.Lookup(s); ok {
		return true
	}
	exps, err := r.parser.Parse(s)
	if err != nil {
		return false
	}
	for id := range exps {
		if _, ok := r.Lookup(id); !ok {
			return false
		}
	}
	return true
}

// Len returns the number of registered units.
func (r *Registry) Len() int { return len(r.units) }

// Identifiers returns the registered identifiers in sorted order.
func (r *Registry) Identifiers() []string {
	ids := make([]string, 0, len(r.units))
	for id := range r.units {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Units returns the registered units sorted by identifier.
func (r *Registry) Units() []*Unit {
	ids := r.Identifiers()
	out := make([]*Unit, len(ids))
	for i, id := range ids {
		out[i] = r.units[id]
	}
	return out
}

// Freeze makes the registry read-only. Later Register calls fail with
// errors.ErrConfiguration.
func (r *Registry) Freeze() { r.frozen = true }

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool { return r.frozen }

// Clone returns an unfrozen registry over the same space holding the same
// units. Units are immutable, so they are shared.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		space:  r.space,
		units:  make(map[string]*Unit, len(r.units)),
		parser: r.parser,
		logger: r.logger,
	}
	for id, u := range r.units {
		c.units[id] = u
	}
	return c
}
