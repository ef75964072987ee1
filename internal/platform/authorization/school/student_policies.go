package school

import (
	"go.classcore.tech/internal/platform/authorization"
)

// StudentPolicies returns the policy table for the student role.
//
// Students read the planning modules and the classroom records that
// concern them, and manage their own profile and credentials. All
// classroom-activity modules are find-only.
func StudentPolicies() authorization.ModulePolicies {
	findOnly := authorization.ActionPolicies{
		authorization.ActionFind: authorization.Allow,
	}

	return authorization.ModulePolicies{
		authorization.ModuleAuthentication: selfOnly(),
		authorization.ModuleStudent:        selfOnly(),

		authorization.ModuleSubject:    readOnly(),
		authorization.ModuleCurriculum: readOnly(),
		authorization.ModuleSchedule:   readOnly(),

		authorization.ModuleLesson:     findOnly,
		authorization.ModuleEvent:      findOnly,
		authorization.ModuleEvaluation: findOnly,
		authorization.ModuleNote:       findOnly,
		authorization.ModuleAttendance: findOnly,
	}
}
