package authorization

import (
	"testing"
	"time"
)

// testMatrix is a small but representative matrix exercising every
// permission variant.
func testMatrix() Matrix {
	return Matrix{
		RoleTeacher: ModulePolicies{
			ModuleAuthentication: ActionPolicies{
				ActionFind:   Self,
				ActionUpdate: Self,
			},
			ModuleStudent: ActionPolicies{
				ActionFind:   Allow,
				ActionDelete: Deny,
			},
		},
		RoleAdministrator: ModulePolicies{
			ModuleAuthentication: ActionPolicies{
				ActionCreate: ExceptTenantOwner,
				ActionUpdate: ExceptTenantOwner,
			},
		},
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(testMatrix(), nil)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	return engine
}

func claimFor(role Role, email string) *Claim {
	return &Claim{
		SubjectEmail: email,
		Role:         role,
		TenantID:     "0b5c9e1a-55f7-4b58-9f9c-0f6f9f3a0001",
		IssuedAt:     time.Now(),
		ExpiresAt:    time.Now().Add(30 * time.Minute),
	}
}

func TestDecide_NoClaim(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name    string
		module  Module
		action  Action
		dctx    *Context
		allowed bool
	}{
		{
			name:    "bootstrap tenant-owner registration allowed",
			module:  ModuleAuthentication,
			action:  ActionCreate,
			dctx:    &Context{TargetRole: RoleTenantOwner},
			allowed: true,
		},
		{
			name:   "registration of any other role denied",
			module: ModuleAuthentication,
			action: ActionCreate,
			dctx:   &Context{TargetRole: RoleAdministrator},
		},
		{
			name:   "no context denied",
			module: ModuleAuthentication,
			action: ActionCreate,
		},
		{
			name:   "any other module denied",
			module: ModuleStudent,
			action: ActionFind,
		},
		{
			name:   "any other action denied even with owner target",
			module: ModuleAuthentication,
			action: ActionUpdate,
			dctx:   &Context{TargetRole: RoleTenantOwner},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := engine.Decide(tt.module, tt.action, nil, tt.dctx)
			if d.Allowed != tt.allowed {
				t.Errorf("Decide() allowed = %v, want %v (reason %q)", d.Allowed, tt.allowed, d.Reason)
			}
			if !tt.allowed && d.Reason != ReasonAuthenticationRequired {
				t.Errorf("Decide() reason = %q, want %q", d.Reason, ReasonAuthenticationRequired)
			}
		})
	}
}

func TestDecide_TenantOwnerBypass(t *testing.T) {
	engine := newTestEngine(t)
	owner := claimFor(RoleTenantOwner, "owner@school.example")

	// The owner is allowed everywhere, including modules and actions that
	// appear in no table at all.
	for _, module := range AllModules {
		for _, action := range AllActions {
			d := engine.Decide(module, action, owner, nil)
			if !d.Allowed {
				t.Errorf("Decide(%s, %s) for tenant-owner denied: %s", module, action, d.Reason)
			}
		}
	}
}

func TestDecide_ImplicitDeny(t *testing.T) {
	engine := newTestEngine(t)
	teacher := claimFor(RoleTeacher, "t@school.example")

	d := engine.Decide(ModuleTenant, ActionFind, teacher, nil)
	if d.Allowed {
		t.Fatal("expected deny for module absent from role table")
	}
	if d.Reason != ReasonModuleNotAccessible {
		t.Errorf("reason = %q, want %q", d.Reason, ReasonModuleNotAccessible)
	}

	d = engine.Decide(ModuleStudent, ActionUpdate, teacher, nil)
	if d.Allowed {
		t.Fatal("expected deny for action absent from module table")
	}
	if d.Reason != ReasonActionNotPermitted {
		t.Errorf("reason = %q, want %q", d.Reason, ReasonActionNotPermitted)
	}

	// A role with no table at all is denied, not allowed.
	student := claimFor(RoleStudent, "s@school.example")
	if d := engine.Decide(ModuleStudent, ActionFind, student, nil); d.Allowed {
		t.Error("expected deny for role with no table")
	}
}

func TestDecide_AllowAndDeny(t *testing.T) {
	engine := newTestEngine(t)
	teacher := claimFor(RoleTeacher, "t@school.example")

	if d := engine.Decide(ModuleStudent, ActionFind, teacher, nil); !d.Allowed {
		t.Errorf("teacher find student denied: %s", d.Reason)
	}

	d := engine.Decide(ModuleStudent, ActionDelete, teacher, nil)
	if d.Allowed {
		t.Fatal("teacher delete student allowed, want explicit deny")
	}
	if d.Reason != ReasonExplicitlyDenied {
		t.Errorf("reason = %q, want %q", d.Reason, ReasonExplicitlyDenied)
	}
}

func TestDecide_Self(t *testing.T) {
	engine := newTestEngine(t)
	teacher := claimFor(RoleTeacher, "maria@school.example")

	tests := []struct {
		name    string
		target  string
		allowed bool
	}{
		{"equal email", "maria@school.example", true},
		{"case-differing email", "Maria@school.example", false},
		{"different email", "other@school.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := engine.Decide(ModuleAuthentication, ActionUpdate, teacher, &Context{TargetEmail: tt.target})
			if d.Allowed != tt.allowed {
				t.Errorf("allowed = %v, want %v", d.Allowed, tt.allowed)
			}
			if !tt.allowed && d.Reason != ReasonSelfOnly {
				t.Errorf("reason = %q, want %q", d.Reason, ReasonSelfOnly)
			}
		})
	}

	// No context at all cannot satisfy Self.
	if d := engine.Decide(ModuleAuthentication, ActionFind, teacher, nil); d.Allowed {
		t.Error("Self permission allowed without target context")
	}
}

func TestDecide_ExceptTenantOwner(t *testing.T) {
	engine := newTestEngine(t)
	admin := claimFor(RoleAdministrator, "admin@school.example")

	d := engine.Decide(ModuleAuthentication, ActionUpdate, admin, &Context{TargetRole: RoleTenantOwner})
	if d.Allowed {
		t.Fatal("expected deny when target is tenant-owner")
	}
	if d.Reason != ReasonTargetIsTenantOwner {
		t.Errorf("reason = %q, want %q", d.Reason, ReasonTargetIsTenantOwner)
	}

	for _, target := range []Role{RoleAdministrator, RoleTeacher, RoleWorker, RoleStudent} {
		d := engine.Decide(ModuleAuthentication, ActionCreate, admin, &Context{TargetRole: target})
		if !d.Allowed {
			t.Errorf("expected allow for target role %s, got deny: %s", target, d.Reason)
		}
	}

	// No target role behaves like a non-owner target.
	if d := engine.Decide(ModuleAuthentication, ActionCreate, admin, nil); !d.Allowed {
		t.Errorf("expected allow without target context, got deny: %s", d.Reason)
	}
}

func TestDecide_IsPure(t *testing.T) {
	engine := newTestEngine(t)
	teacher := claimFor(RoleTeacher, "t@school.example")

	first := engine.Decide(ModuleStudent, ActionFind, teacher, nil)
	for i := 0; i < 100; i++ {
		if d := engine.Decide(ModuleStudent, ActionFind, teacher, nil); d != first {
			t.Fatalf("decision changed across calls: %+v vs %+v", d, first)
		}
	}
}

func TestMatrixValidate(t *testing.T) {
	tests := []struct {
		name    string
		matrix  Matrix
		wantErr bool
	}{
		{"valid", testMatrix(), false},
		{"unknown role", Matrix{Role("janitor"): ModulePolicies{}}, true},
		{
			"tenant-owner table rejected",
			Matrix{RoleTenantOwner: ModulePolicies{}},
			true,
		},
		{
			"unknown module",
			Matrix{RoleTeacher: ModulePolicies{Module("cafeteria"): ActionPolicies{ActionFind: Allow}}},
			true,
		},
		{
			"unknown action",
			Matrix{RoleTeacher: ModulePolicies{ModuleStudent: ActionPolicies{Action("archive"): Allow}}},
			true,
		},
		{
			"nil permission",
			Matrix{RoleTeacher: ModulePolicies{ModuleStudent: ActionPolicies{ActionFind: nil}}},
			true,
		},
		{
			"empty action table",
			Matrix{RoleTeacher: ModulePolicies{ModuleStudent: ActionPolicies{}}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.matrix.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range AllRoles {
		parsed, err := ParseRole(string(r))
		if err != nil || parsed != r {
			t.Errorf("ParseRole(%q) = %v, %v", r, parsed, err)
		}
	}
	if _, err := ParseRole("janitor"); err == nil {
		t.Error("ParseRole accepted an unknown role")
	}
}
