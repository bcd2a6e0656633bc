package domain

import "time"

// Person is a resident, employee, or visitor registered at a condominium.
// People records are condominium-scoped: most roles may only read and write
// records belonging to their own site.
type Person struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CPF           string    `json:"cpf,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Unit          string    `json:"unit,omitempty"`
	CondominiumID string    `json:"condominiumId"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
}
