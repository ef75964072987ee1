package school

import (
	"go.classcore.tech/internal/platform/authorization"
)

// AdministratorPolicies returns the policy table for the administrator role.
//
// Administrators run the day-to-day of a school: full access to people,
// pedagogy and planning modules. Credential management is fenced with
// ExceptTenantOwner so an administrator can never touch the owner's
// account. The tenant module is absent: only the owner manages the tenant.
func AdministratorPolicies() authorization.ModulePolicies {
	exceptOwner := authorization.ActionPolicies{
		authorization.ActionCreate:  authorization.ExceptTenantOwner,
		authorization.ActionFind:    authorization.ExceptTenantOwner,
		authorization.ActionFindAll: authorization.Allow,
		authorization.ActionUpdate:  authorization.ExceptTenantOwner,
		authorization.ActionDelete:  authorization.ExceptTenantOwner,
	}

	return authorization.ModulePolicies{
		authorization.ModuleAuthentication: exceptOwner,

		// People
		authorization.ModuleAdministrator: allow(fullCrud...),
		authorization.ModuleTeacher:       allow(fullCrud...),
		authorization.ModuleStudent:       allow(fullCrud...),
		authorization.ModuleWorker:        allow(fullCrud...),

		// Pedagogy and planning
		authorization.ModuleSubject:    allow(fullCrud...),
		authorization.ModuleCurriculum: allow(fullCrudWithMembers...),
		authorization.ModuleSchedule:   allow(fullCrudWithMembers...),

		// Classroom activity
		authorization.ModuleLesson:     allow(fullCrudWithMembers...),
		authorization.ModuleEvent:      allow(fullCrud...),
		authorization.ModuleEvaluation: allow(fullCrud...),
		authorization.ModuleNote:       allow(fullCrud...),
		authorization.ModuleAttendance: allow(fullCrudWithMembers...),
	}
}
