package domain

import "time"

// Condominium is a managed site. Accounts and people reference it by id; no
// referential integrity is enforced beyond filtering, so dangling references
// are tolerated.
type Condominium struct {
	ID          string    `json:"id"`
	LegalName   string    `json:"legalName"`
	DisplayName string    `json:"displayName"`
	CNPJ        string    `json:"cnpj,omitempty"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	CEP         string    `json:"cep,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	ManagerName string    `json:"managerName,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}
