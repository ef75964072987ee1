// Package school contains the code-first policy tables for the ClassCore
// school-administration domain: one table per role, assembled into the
// immutable policy matrix at startup.
//
// Tenant-owner has no table here. It administers everything within its own
// tenant and bypasses the matrix entirely (enforced by the engine).
package school

import (
	"log/slog"

	"go.classcore.tech/internal/platform/authorization"
)

// fullCrud is the complete action set for a module that supports no
// membership operations.
var fullCrud = []authorization.Action{
	authorization.ActionCreate,
	authorization.ActionFind,
	authorization.ActionFindAll,
	authorization.ActionUpdate,
	authorization.ActionDelete,
}

// fullCrudWithMembers extends fullCrud with add/remove for modules that
// manage member lists (curricula, schedules, lessons, attendance).
var fullCrudWithMembers = append(append([]authorization.Action{}, fullCrud...),
	authorization.ActionAdd,
	authorization.ActionRemove,
)

// allow builds an action table granting Allow for every listed action.
func allow(actions ...authorization.Action) authorization.ActionPolicies {
	p := make(authorization.ActionPolicies, len(actions))
	for _, a := range actions {
		p[a] = authorization.Allow
	}
	return p
}

// selfOnly builds the find/update Self table shared by every non-admin
// role for its own profile and credentials.
func selfOnly() authorization.ActionPolicies {
	return authorization.ActionPolicies{
		authorization.ActionFind:   authorization.Self,
		authorization.ActionUpdate: authorization.Self,
	}
}

// readOnly builds a find/findAll Allow table.
func readOnly() authorization.ActionPolicies {
	return authorization.ActionPolicies{
		authorization.ActionFind:    authorization.Allow,
		authorization.ActionFindAll: authorization.Allow,
	}
}

// NewMatrix assembles the full policy matrix for the school domain.
// The result is static data: build it once at startup and share it.
func NewMatrix() authorization.Matrix {
	return authorization.Matrix{
		authorization.RoleAdministrator: AdministratorPolicies(),
		authorization.RoleTeacher:       TeacherPolicies(),
		authorization.RoleStudent:       StudentPolicies(),
		authorization.RoleWorker:        WorkerPolicies(),
	}
}

// NewEngine builds the policy engine over the school matrix.
// Panics on an invalid matrix: the tables are compile-time data, so a
// validation failure is a programming error, not a runtime condition.
func NewEngine(logger *slog.Logger) *authorization.Engine {
	engine, err := authorization.NewEngine(NewMatrix(), logger)
	if err != nil {
		panic("school: invalid policy matrix: " + err.Error())
	}
	return engine
}
