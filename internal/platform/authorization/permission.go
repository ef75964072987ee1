package authorization

// Permission is the policy verdict template attached to a (role, module,
// action) triple. It is a sealed sum type: the only values are Allow, Deny,
// Self and ExceptTenantOwner, and no other package can add a variant.
//
// The engine dispatches on the concrete variant; anything unrecognized is
// denied, never allowed.
type Permission interface {
	permission()
	String() string
}

type allowPermission struct{}
type denyPermission struct{}
type selfPermission struct{}
type exceptTenantOwnerPermission struct{}

func (allowPermission) permission()             {}
func (denyPermission) permission()              {}
func (selfPermission) permission()              {}
func (exceptTenantOwnerPermission) permission() {}

func (allowPermission) String() string             { return "allow" }
func (denyPermission) String() string              { return "deny" }
func (selfPermission) String() string              { return "self" }
func (exceptTenantOwnerPermission) String() string { return "except-tenant-owner" }

var (
	// Allow grants the action unconditionally.
	Allow Permission = allowPermission{}

	// Deny refuses the action explicitly, even if a broader rule would
	// otherwise grant it.
	Deny Permission = denyPermission{}

	// Self grants the action only when the contextual target identity
	// equals the caller's own identity.
	Self Permission = selfPermission{}

	// ExceptTenantOwner grants the action unless the contextual target
	// role is tenant-owner.
	ExceptTenantOwner Permission = exceptTenantOwnerPermission{}
)
