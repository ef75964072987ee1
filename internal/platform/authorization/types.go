// Package authorization provides the RBAC policy engine for ClassCore.
//
// Access decisions are evaluated against a static role -> module -> action
// permission matrix that is built once at startup from code-first tables
// (see the school subpackage) and never mutated afterwards.
package authorization

import (
	"fmt"
	"time"
)

// Role is the closed set of caller roles in a tenant.
type Role string

const (
	RoleTenantOwner   Role = "tenant-owner"
	RoleAdministrator Role = "administrator"
	RoleTeacher       Role = "teacher"
	RoleWorker        Role = "worker"
	RoleStudent       Role = "student"
)

// AllRoles lists every valid role. Used for startup validation.
var AllRoles = []Role{
	RoleTenantOwner,
	RoleAdministrator,
	RoleTeacher,
	RoleWorker,
	RoleStudent,
}

// ParseRole validates a role string against the closed set.
func ParseRole(s string) (Role, error) {
	for _, r := range AllRoles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// IsValid reports whether the role belongs to the closed set.
func (r Role) IsValid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Module is a resource family subject to independent permission rules.
type Module string

const (
	ModuleAuthentication Module = "authentication"
	ModuleAdministrator  Module = "administrator"
	ModuleTeacher        Module = "teacher"
	ModuleStudent        Module = "student"
	ModuleWorker         Module = "worker"
	ModuleSubject        Module = "subject"
	ModuleCurriculum     Module = "curriculum"
	ModuleSchedule       Module = "schedule"
	ModuleLesson         Module = "lesson"
	ModuleEvent          Module = "event"
	ModuleEvaluation     Module = "evaluation"
	ModuleNote           Module = "note"
	ModuleAttendance     Module = "attendance"
	ModuleTenant         Module = "tenant"
)

// AllModules lists every valid module. Used for startup validation.
var AllModules = []Module{
	ModuleAuthentication,
	ModuleAdministrator,
	ModuleTeacher,
	ModuleStudent,
	ModuleWorker,
	ModuleSubject,
	ModuleCurriculum,
	ModuleSchedule,
	ModuleLesson,
	ModuleEvent,
	ModuleEvaluation,
	ModuleNote,
	ModuleAttendance,
	ModuleTenant,
}

// IsValid reports whether the module belongs to the closed set.
func (m Module) IsValid() bool {
	for _, known := range AllModules {
		if m == known {
			return true
		}
	}
	return false
}

// Action is a CRUD-family operation kind.
type Action string

const (
	ActionCreate  Action = "create"
	ActionFind    Action = "find"
	ActionFindAll Action = "findAll"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionAdd     Action = "add"
	ActionRemove  Action = "remove"
)

// AllActions lists every valid action. Used for startup validation.
var AllActions = []Action{
	ActionCreate,
	ActionFind,
	ActionFindAll,
	ActionUpdate,
	ActionDelete,
	ActionAdd,
	ActionRemove,
}

// IsValid reports whether the action belongs to the closed set.
func (a Action) IsValid() bool {
	for _, known := range AllActions {
		if a == known {
			return true
		}
	}
	return false
}

// Claim is the verified identity extracted from a credential.
// It is immutable once issued: a refreshed token carries a new Claim value.
// TenantID is the mandatory scoping key for every data-access call and is
// only ever taken from a verified claim, never from client input.
type Claim struct {
	SubjectEmail string
	Role         Role
	TenantID     string
	IssuedAt     time.Time
	ExpiresAt    time.Time
}
