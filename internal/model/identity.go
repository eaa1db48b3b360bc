package model

import (
	"encoding/json"
	"fmt"
)

// Role labels what kind of member an identity is. It is display data only.
type Role string

const (
	RoleEntrepreneur Role = "entrepreneur"
	RoleMentor       Role = "mentor"
	RoleInvestor     Role = "investor"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleEntrepreneur, RoleMentor, RoleInvestor}

// ParseRole converts a string into a Role, rejecting anything outside the enumeration.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// UnmarshalJSON rejects unknown roles so a persisted record carrying one is treated as corrupt.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Identity is an authenticated principal. It is also the persisted session record.
type Identity struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Validate checks the fields a restored record must carry.
func (i *Identity) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("identity: missing id")
	}
	if i.Email == "" {
		return fmt.Errorf("identity: missing email")
	}
	if !i.Role.Valid() {
		return fmt.Errorf("identity: unknown role %q", i.Role)
	}
	return nil
}

// Clone returns a copy that callers may modify freely.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}
