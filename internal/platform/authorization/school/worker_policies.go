package school

import (
	"go.classcore.tech/internal/platform/authorization"
)

// WorkerPolicies returns the policy table for the worker role.
//
// Workers (non-teaching staff) see school events and their own profile and
// credentials. No access to pedagogy or other people's records.
func WorkerPolicies() authorization.ModulePolicies {
	return authorization.ModulePolicies{
		authorization.ModuleAuthentication: selfOnly(),
		authorization.ModuleWorker:         selfOnly(),

		authorization.ModuleEvent: readOnly(),
	}
}
