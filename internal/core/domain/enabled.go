package domain

import (
	"encoding/json"
	"sort"
)

// Core loader mods that are always present in a fresh enabled set, matching
// the file layout the game runtime expects.
var coreEnabledKeys = []string{
	"Northstar.Client",
	"Northstar.Custom",
	"Northstar.CustomServers",
}

// EnabledSet is the persisted overlay recording which installed mods are
// currently active, keyed by "Namespace.Name". Mutations are idempotent.
// Serialization is deterministic: keys are emitted in sorted order so that
// save(load(p)) round-trips byte-identically.
type EnabledSet struct {
	mods map[string]bool
}

// NewEnabledSet returns a set with the core loader mods enabled.
func NewEnabledSet() *EnabledSet {
	s := &EnabledSet{mods: make(map[string]bool, len(coreEnabledKeys))}
	for _, k := range coreEnabledKeys {
		s.mods[k] = true
	}
	return s
}

// Enable marks the given family key active. Enabling an already-enabled mod
// is a no-op.
func (s *EnabledSet) Enable(key string) {
	s.mods[key] = true
}

// Disable marks the given family key inactive.
func (s *EnabledSet) Disable(key string) {
	s.mods[key] = false
}

// IsEnabled reports whether a key is active. Unknown keys default to enabled,
// matching the runtime's behavior for mods it has never seen toggled.
func (s *EnabledSet) IsEnabled(key string) bool {
	v, ok := s.mods[key]
	if !ok {
		return true
	}
	return v
}

// Contains reports whether the set has an explicit record for the key.
func (s *EnabledSet) Contains(key string) bool {
	_, ok := s.mods[key]
	return ok
}

// Remove drops the record for a key, if any.
func (s *EnabledSet) Remove(key string) {
	delete(s.mods, key)
}

// Keys returns the recorded keys in sorted order.
func (s *EnabledSet) Keys() []string {
	keys := make([]string, 0, len(s.mods))
	for k := range s.mods {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON emits the set as a JSON object with deterministic key order.
func (s *EnabledSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.mods)
}

// UnmarshalJSON decodes a JSON object of key -> enabled pairs.
func (s *EnabledSet) UnmarshalJSON(data []byte) error {
	m := make(map[string]bool)
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	s.mods = m
	return nil
}
