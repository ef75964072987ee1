package events

import (
	"go.classcore.tech/internal/platform/authorization"
	"go.classcore.tech/internal/platform/common"
)

// AccountRegistered is emitted when an account is created, including the
// tenant-owner account created during tenant provisioning.
type AccountRegistered struct {
	common.BaseDomainEvent `bson:",inline"`
	AccountID              string             `json:"accountId"`
	Email                  string             `json:"email"`
	Role                   authorization.Role `json:"role"`
}

func NewAccountRegistered(ctx *common.ExecutionContext, accountID, email string, role authorization.Role) *AccountRegistered {
	return &AccountRegistered{
		BaseDomainEvent: newBase(ctx, EventTypeAccountRegistered, "authentication", accountID),
		AccountID:       accountID,
		Email:           email,
		Role:            role,
	}
}

func (e *AccountRegistered) ToDataJSON() string {
	return common.MarshalDataJSON(map[string]any{
		"accountId": e.AccountID,
		"email":     e.Email,
		"role":      e.Role,
	})
}

// AccountUpdated is emitted when account profile fields change. Password
// changes emit this event too; the payload never carries the password.
type AccountUpdated struct {
	common.BaseDomainEvent `bson:",inline"`
	AccountID              string   `json:"accountId"`
	UpdatedFields          []string `json:"updatedFields"`
}

func NewAccountUpdated(ctx *common.ExecutionContext, accountID string, updatedFields []string) *AccountUpdated {
	return &AccountUpdated{
		BaseDomainEvent: newBase(ctx, EventTypeAccountUpdated, "authentication", accountID),
		AccountID:       accountID,
		UpdatedFields:   updatedFields,
	}
}

func (e *AccountUpdated) ToDataJSON() string {
	return common.MarshalDataJSON(map[string]any{
		"accountId":     e.AccountID,
		"updatedFields": e.UpdatedFields,
	})
}

// AccountDeleted is emitted when an account is removed.
type AccountDeleted struct {
	common.BaseDomainEvent `bson:",inline"`
	AccountID              string `json:"accountId"`
	Email                  string `json:"email"`
}

func NewAccountDeleted(ctx *common.ExecutionContext, accountID, email string) *AccountDeleted {
	return &AccountDeleted{
		BaseDomainEvent: newBase(ctx, EventTypeAccountDeleted, "authentication", accountID),
		AccountID:       accountID,
		Email:           email,
	}
}

func (e *AccountDeleted) ToDataJSON() string {
	return common.MarshalDataJSON(map[string]any{
		"accountId": e.AccountID,
		"email":     e.Email,
	})
}

// TenantProvisioned is emitted when a school tenant and its owner account
// are created together.
type TenantProvisioned struct {
	common.BaseDomainEvent `bson:",inline"`
	ProvisionedTenantID    string `json:"provisionedTenantId"`
	Name                   string `json:"name"`
	OwnerEmail             string `json:"ownerEmail"`
}

func NewTenantProvisioned(ctx *common.ExecutionContext, tenantID, name, ownerEmail string) *TenantProvisioned {
	return &TenantProvisioned{
		BaseDomainEvent:     newBase(ctx, EventTypeTenantProvisioned, "tenant", tenantID),
		ProvisionedTenantID: tenantID,
		Name:                name,
		OwnerEmail:          ownerEmail,
	}
}

func (e *TenantProvisioned) ToDataJSON() string {
	return common.MarshalDataJSON(map[string]any{
		"tenantId":   e.ProvisionedTenantID,
		"name":       e.Name,
		"ownerEmail": e.OwnerEmail,
	})
}
