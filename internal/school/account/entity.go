// Package account implements the authentication module: the credential
// records behind login, registration and profile management.
package account

import (
	"time"

	"go.classcore.tech/internal/platform/authorization"
)

// Account is a login-capable identity scoped to one school tenant.
// Collection: accounts
type Account struct {
	ID           string             `bson:"_id" json:"id"`
	TenantID     string             `bson:"tenantId" json:"tenantId"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         authorization.Role `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (a *Account) AggregateID() string {
	return a.ID
}

func (a *Account) CollectionName() string {
	return "accounts"
}

// IsTenantOwner reports whether this account owns its tenant.
func (a *Account) IsTenantOwner() bool {
	return a.Role == authorization.RoleTenantOwner
}

// Public is the account shape returned to clients; it never carries the
// password hash.
type Public struct {
	ID       string             `json:"id"`
	TenantID string             `json:"tenantId"`
	Name     string             `json:"name"`
	Email    string             `json:"email"`
	Role     authorization.Role `json:"role"`
}

// ToPublic strips credentials from the account.
func (a *Account) ToPublic() Public {
	return Public{
		ID:       a.ID,
		TenantID: a.TenantID,
		Name:     a.Name,
		Email:    a.Email,
		Role:     a.Role,
	}
}
