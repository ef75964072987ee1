package school

import (
	"go.classcore.tech/internal/platform/authorization"
)

// TeacherPolicies returns the policy table for the teacher role.
//
// Teachers read the planning modules and their students, and write the
// classroom-activity modules for the lessons they run. They can only see
// and update their own profile and credentials. Nothing here grants
// delete: removing records is an administrator concern.
func TeacherPolicies() authorization.ModulePolicies {
	write := authorization.ActionPolicies{
		authorization.ActionCreate:  authorization.Allow,
		authorization.ActionFind:    authorization.Allow,
		authorization.ActionFindAll: authorization.Allow,
		authorization.ActionUpdate:  authorization.Allow,
	}
	writeWithMembers := authorization.ActionPolicies{
		authorization.ActionCreate:  authorization.Allow,
		authorization.ActionFind:    authorization.Allow,
		authorization.ActionFindAll: authorization.Allow,
		authorization.ActionUpdate:  authorization.Allow,
		authorization.ActionAdd:     authorization.Allow,
		authorization.ActionRemove:  authorization.Allow,
	}

	return authorization.ModulePolicies{
		authorization.ModuleAuthentication: selfOnly(),
		authorization.ModuleTeacher:        selfOnly(),

		authorization.ModuleStudent:    readOnly(),
		authorization.ModuleSubject:    readOnly(),
		authorization.ModuleCurriculum: readOnly(),
		authorization.ModuleSchedule:   readOnly(),

		authorization.ModuleLesson:     writeWithMembers,
		authorization.ModuleEvent:      write,
		authorization.ModuleEvaluation: write,
		authorization.ModuleNote:       write,
		authorization.ModuleAttendance: writeWithMembers,
	}
}
