package authorization

import "fmt"

// ActionPolicies maps an action to its permission verdict template.
type ActionPolicies map[Action]Permission

// ModulePolicies maps a module to its per-action policies.
type ModulePolicies map[Module]ActionPolicies

// Matrix is the full role -> module -> action permission table.
//
// The matrix is pure static data: it is built once at startup from the
// code-first tables in the school subpackage, validated, and shared by
// reference afterwards. Nothing mutates it at runtime, which makes it safe
// for concurrent authorization decisions without locking.
//
// A (role, module) or (module, action) combination absent from the matrix
// is an implicit deny, not a silent allow.
type Matrix map[Role]ModulePolicies

// Validate checks the matrix against the closed role/module/action sets.
// A misspelled key would otherwise surface as a runtime "module not
// accessible" deny masking a configuration bug, so startup fails instead.
func (m Matrix) Validate() error {
	for role, modules := range m {
		if !role.IsValid() {
			return fmt.Errorf("policy matrix: unknown role %q", role)
		}
		if role == RoleTenantOwner {
			return fmt.Errorf("policy matrix: tenant-owner must not have a table (bypasses the matrix)")
		}
		for module, actions := range modules {
			if !module.IsValid() {
				return fmt.Errorf("policy matrix: role %q: unknown module %q", role, module)
			}
			if len(actions) == 0 {
				return fmt.Errorf("policy matrix: role %q, module %q: empty action table", role, module)
			}
			for action, perm := range actions {
				if !action.IsValid() {
					return fmt.Errorf("policy matrix: role %q, module %q: unknown action %q", role, module, action)
				}
				if perm == nil {
					return fmt.Errorf("policy matrix: role %q, module %q, action %q: nil permission", role, module, action)
				}
			}
		}
	}
	return nil
}

// lookup returns the permission for (role, module, action).
// The booleans distinguish a missing module table from a missing action.
func (m Matrix) lookup(role Role, module Module, action Action) (perm Permission, moduleKnown, actionKnown bool) {
	modules, ok := m[role]
	if !ok {
		return nil, false, false
	}
	actions, ok := modules[module]
	if !ok {
		return nil, false, false
	}
	perm, ok = actions[action]
	if !ok {
		return nil, true, false
	}
	return perm, true, true
}
