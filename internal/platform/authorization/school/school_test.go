package school

import (
	"testing"
	"time"

	"go.classcore.tech/internal/platform/authorization"
)

func claimFor(role authorization.Role, email string) *authorization.Claim {
	return &authorization.Claim{
		SubjectEmail: email,
		Role:         role,
		TenantID:     "5f6d1c2e-3a4b-4c5d-8e9f-102030405060",
		IssuedAt:     time.Now(),
		ExpiresAt:    time.Now().Add(30 * time.Minute),
	}
}

func TestNewMatrixValidates(t *testing.T) {
	if err := NewMatrix().Validate(); err != nil {
		t.Fatalf("school matrix invalid: %v", err)
	}
}

func TestNewEngine(t *testing.T) {
	if NewEngine(nil) == nil {
		t.Fatal("NewEngine returned nil")
	}
}

func TestTeacherGrid(t *testing.T) {
	engine := NewEngine(nil)
	teacher := claimFor(authorization.RoleTeacher, "t@school.example")

	tests := []struct {
		module  authorization.Module
		action  authorization.Action
		allowed bool
	}{
		{authorization.ModuleStudent, authorization.ActionFind, true},
		{authorization.ModuleStudent, authorization.ActionFindAll, true},
		{authorization.ModuleStudent, authorization.ActionDelete, false},
		{authorization.ModuleStudent, authorization.ActionCreate, false},
		{authorization.ModuleSubject, authorization.ActionFind, true},
		{authorization.ModuleSubject, authorization.ActionCreate, false},
		{authorization.ModuleLesson, authorization.ActionCreate, true},
		{authorization.ModuleLesson, authorization.ActionAdd, true},
		{authorization.ModuleLesson, authorization.ActionDelete, false},
		{authorization.ModuleAttendance, authorization.ActionCreate, true},
		{authorization.ModuleEvaluation, authorization.ActionUpdate, true},
		{authorization.ModuleTenant, authorization.ActionFind, false},
		{authorization.ModuleWorker, authorization.ActionFind, false},
	}

	for _, tt := range tests {
		d := engine.Decide(tt.module, tt.action, teacher, nil)
		if d.Allowed != tt.allowed {
			t.Errorf("teacher %s/%s: allowed = %v, want %v (reason %q)",
				tt.module, tt.action, d.Allowed, tt.allowed, d.Reason)
		}
	}

	// Own profile and credentials are self-only.
	own := engine.Decide(authorization.ModuleTeacher, authorization.ActionUpdate, teacher,
		&authorization.Context{TargetEmail: "t@school.example"})
	if !own.Allowed {
		t.Errorf("teacher update own profile denied: %s", own.Reason)
	}
	other := engine.Decide(authorization.ModuleTeacher, authorization.ActionUpdate, teacher,
		&authorization.Context{TargetEmail: "colleague@school.example"})
	if other.Allowed {
		t.Error("teacher updated a colleague's profile")
	}
}

func TestStudentGrid(t *testing.T) {
	engine := NewEngine(nil)
	student := claimFor(authorization.RoleStudent, "s@school.example")

	tests := []struct {
		module  authorization.Module
		action  authorization.Action
		allowed bool
	}{
		{authorization.ModuleSchedule, authorization.ActionFindAll, true},
		{authorization.ModuleCurriculum, authorization.ActionFind, true},
		{authorization.ModuleLesson, authorization.ActionFind, true},
		{authorization.ModuleLesson, authorization.ActionFindAll, false},
		{authorization.ModuleLesson, authorization.ActionCreate, false},
		{authorization.ModuleEvaluation, authorization.ActionFind, true},
		{authorization.ModuleEvaluation, authorization.ActionUpdate, false},
		{authorization.ModuleTeacher, authorization.ActionFind, false},
		{authorization.ModuleAttendance, authorization.ActionCreate, false},
	}

	for _, tt := range tests {
		d := engine.Decide(tt.module, tt.action, student, nil)
		if d.Allowed != tt.allowed {
			t.Errorf("student %s/%s: allowed = %v, want %v (reason %q)",
				tt.module, tt.action, d.Allowed, tt.allowed, d.Reason)
		}
	}
}

func TestWorkerGrid(t *testing.T) {
	engine := NewEngine(nil)
	worker := claimFor(authorization.RoleWorker, "w@school.example")

	if d := engine.Decide(authorization.ModuleEvent, authorization.ActionFindAll, worker, nil); !d.Allowed {
		t.Errorf("worker list events denied: %s", d.Reason)
	}
	if d := engine.Decide(authorization.ModuleEvent, authorization.ActionCreate, worker, nil); d.Allowed {
		t.Error("worker created an event")
	}
	for _, module := range []authorization.Module{
		authorization.ModuleSubject,
		authorization.ModuleCurriculum,
		authorization.ModuleSchedule,
		authorization.ModuleStudent,
		authorization.ModuleLesson,
	} {
		if d := engine.Decide(module, authorization.ActionFind, worker, nil); d.Allowed {
			t.Errorf("worker read %s, want deny", module)
		}
	}
}

func TestAdministratorGrid(t *testing.T) {
	engine := NewEngine(nil)
	admin := claimFor(authorization.RoleAdministrator, "admin@school.example")

	for _, module := range []authorization.Module{
		authorization.ModuleTeacher,
		authorization.ModuleStudent,
		authorization.ModuleWorker,
		authorization.ModuleSubject,
		authorization.ModuleLesson,
		authorization.ModuleAttendance,
	} {
		for _, action := range []authorization.Action{
			authorization.ActionCreate,
			authorization.ActionFindAll,
			authorization.ActionDelete,
		} {
			if d := engine.Decide(module, action, admin, nil); !d.Allowed {
				t.Errorf("administrator %s/%s denied: %s", module, action, d.Reason)
			}
		}
	}

	// Credentials of the tenant owner stay out of reach.
	d := engine.Decide(authorization.ModuleAuthentication, authorization.ActionUpdate, admin,
		&authorization.Context{TargetRole: authorization.RoleTenantOwner})
	if d.Allowed {
		t.Error("administrator touched the tenant-owner account")
	}
	d = engine.Decide(authorization.ModuleAuthentication, authorization.ActionUpdate, admin,
		&authorization.Context{TargetRole: authorization.RoleTeacher})
	if !d.Allowed {
		t.Errorf("administrator update teacher credentials denied: %s", d.Reason)
	}

	// The tenant itself belongs to the owner.
	if d := engine.Decide(authorization.ModuleTenant, authorization.ActionUpdate, admin, nil); d.Allowed {
		t.Error("administrator updated the tenant")
	}
}
