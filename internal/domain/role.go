package domain

import (
	"database/sql/driver"
	"fmt"
)

// Role is the permission tier of a user inside its organization.
// The zero value is not a valid role; values only enter the system through
// the constants below or through ParseRole.
type Role uint8

const (
	RoleMember Role = iota + 1
	RoleAdmin
)

const (
	roleMemberName = "MEMBER"
	roleAdminName  = "ADMIN"
)

// ParseRole converts the wire/storage name of a role into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case roleAdminName:
		return RoleAdmin, nil
	case roleMemberName:
		return RoleMember, nil
	}
	return 0, fmt.Errorf("invalid role %q: must be one of %s, %s", s, roleAdminName, roleMemberName)
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return roleAdminName
	case RoleMember:
		return roleMemberName
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// IsValid reports whether r is one of the declared roles.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleMember
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("cannot marshal invalid role %d", uint8(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value stores the role as its name so the column stays readable and the
// schema CHECK constraint can guard it.
func (r Role) Value() (driver.Value, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("cannot store invalid role %d", uint8(r))
	}
	return r.String(), nil
}

func (r *Role) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return r.UnmarshalText([]byte(v))
	case []byte:
		return r.UnmarshalText(v)
	case nil:
		return fmt.Errorf("role column is NULL")
	}
	return fmt.Errorf("cannot scan %T into Role", src)
}
