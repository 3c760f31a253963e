package particle

// AttributeSet holds the functor-specific scalar attributes of a single
// particle (e.g. per-type sigma/epsilon overrides, an internal energy
// tracked by a many-body functor) that are not part of AutoPas' fixed
// position/velocity/force/id/type/state record. Attribute identity is a
// compile-/construction-time contract between the particle population and
// the functor, exactly as spec'd; AttributeSet just gives that contract a
// concrete, functor-agnostic home on the Particle struct.
type AttributeSet map[string]float64

// Get returns the named attribute and whether it was set.
func (a AttributeSet) Get(name string) (float64, bool) {
	v, ok := a[name]
	return v, ok
}

// Set assigns the named attribute, allocating the underlying map on first
// use so that the zero value of Particle remains usable without
// initialization.
func (a *AttributeSet) Set(name string, v float64) {
	if *a == nil {
		*a = AttributeSet{}
	}
	(*a)[name] = v
}
