package skills

import "slices"

// ActivationSet tracks which skills the model has activated this session,
// preserving activation order for prompt assembly. Activating an already
// active skill is a no-op. The set is scoped to a single conversation and
// is not safe for concurrent use; the agent loop owns it.
type ActivationSet struct {
	names []string
}

// NewActivationSet returns an empty activation set.
func NewActivationSet() *ActivationSet {
	return &ActivationSet{}
}

// Add marks a skill as active. It returns true if the skill was newly
// activated and false if it was already active.
func (a *ActivationSet) Add(name string) bool {
	if a.IsActive(name) {
		return false
	}
	a.names = append(a.names, name)
	return true
}

// IsActive reports whether a skill has been activated.
func (a *ActivationSet) IsActive(name string) bool {
	return slices.Contains(a.names, name)
}

// Names returns the active skill names in activation order.
func (a *ActivationSet) Names() []string {
	return slices.Clone(a.names)
}

// Len returns the number of active skills.
func (a *ActivationSet) Len() int {
	return len(a.names)
}
