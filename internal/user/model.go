package user

import (
	"time"
)

// Role is a closed set. The legacy wire format exposes one boolean per role,
// but a user holds exactly one role internally so the flags can never be all
// false or contradict each other.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleVendor   Role = "VENDOR"
	RoleDelivery Role = "DELIVERY"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleDelivery:
		return true
	}
	return false
}

type User struct {
	ID          uint
	Email       string
	Password    string // bcrypt hash, never serialized
	Role        Role
	IsStaff     bool
	IsSuperuser bool
	IsActive    bool
	CreatedAt   time.Time
}

// Response is the public wire shape. Role flags are derived from Role.
type Response struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	IsVendor   bool   `json:"is_vendor"`
	IsCustomer bool   `json:"is_customer"`
	IsDelivery bool   `json:"is_delivery"`
}

func (u *User) Response() Response {
	return Response{
		ID:         u.ID,
		Email:      u.Email,
		IsVendor:   u.Role == RoleVendor,
		IsCustomer: u.Role == RoleCustomer,
		IsDelivery: u.Role == RoleDelivery,
	}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`

	// Legacy role flags. At most one may be set; none means customer.
	IsVendor   bool `json:"is_vendor"`
	IsCustomer bool `json:"is_customer"`
	IsDelivery bool `json:"is_delivery"`
}

// RoleFromFlags maps the legacy boolean trio onto the closed Role set.
func RoleFromFlags(vendor, customer, delivery bool) (Role, error) {
	set := 0
	role := RoleCustomer
	if vendor {
		set++
		role = RoleVendor
	}
	if delivery {
		set++
		role = RoleDelivery
	}
	if customer {
		set++
		role = RoleCustomer
	}
	if set > 1 {
		return "", ErrConflictingRoles
	}
	return role, nil
}

type SuperuserInput struct {
	Email    string
	Password string

	// nil means "not supplied"; an explicit false is rejected.
	IsStaff     *bool
	IsSuperuser *bool
}
