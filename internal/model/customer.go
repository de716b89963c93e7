package model

import "time"

// Customer mirrors the provider's customer resource. The provider owns the
// record; this struct is only a normalized read model.
type Customer struct {
	ID       string            `json:"customer_id"`
	Email    string            `json:"email"`
	Name     string            `json:"name,omitempty"`
	Phone    string            `json:"phone,omitempty"`
	Address  *Address          `json:"address,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Created  time.Time         `json:"created,omitempty"`
}

// Address is the provider's postal address shape.
type Address struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// CustomerUpdate is a partial update. Nil pointer fields are left untouched
// on the provider side; a non-nil pointer to the zero value clears the field.
type CustomerUpdate struct {
	Email    *string           `json:"email,omitempty"`
	Name     *string           `json:"name,omitempty"`
	Phone    *string           `json:"phone,omitempty"`
	Address  *Address          `json:"address,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (u CustomerUpdate) IsEmpty() bool {
	return u.Email == nil && u.Name == nil && u.Phone == nil &&
		u.Address == nil && len(u.Metadata) == 0
}
