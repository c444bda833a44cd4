package profile

import "time"

// Membership tiers, lowest to highest.
const (
	MembershipBronze   = "bronze"
	MembershipSilver   = "silver"
	MembershipGold     = "gold"
	MembershipPlatinum = "platinum"
)

func ValidMembership(level string) bool {
	switch level {
	case MembershipBronze, MembershipSilver, MembershipGold, MembershipPlatinum:
		return true
	}
	return false
}

// Profile extends a user with contact, address, and loyalty fields.
// TotalOrders and TotalSpent are derived from the user's orders at read time,
// never stored.
type Profile struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	ShippingAddress string    `json:"shipping_address"`
	BillingAddress  string    `json:"billing_address"`
	Points          int       `json:"points"`
	MembershipLevel string    `json:"membership_level"`
	WantsNewsletter bool      `json:"wants_newsletter"`
	ProfileImage    *string   `json:"profile_image"`
	TotalOrders     int       `json:"total_orders"`
	TotalSpent      float64   `json:"total_spent"`
	CreatedAt       time.Time `json:"created_at"`
}

// PublicProfile is the reduced field set any caller may see. No contact or
// financial fields.
type PublicProfile struct {
	ID              uint    `json:"id"`
	MembershipLevel string  `json:"membership_level"`
	TotalOrders     int     `json:"total_orders"`
	ProfileImage    *string `json:"profile_image"`
}

func (p Profile) Public() PublicProfile {
	return PublicProfile{
		ID:              p.ID,
		MembershipLevel: p.MembershipLevel,
		TotalOrders:     p.TotalOrders,
		ProfileImage:    p.ProfileImage,
	}
}

// SelfUpdateInput deliberately has no membership_level or points: both are
// admin-managed, read-only to the profile's owner.
type SelfUpdateInput struct {
	Phone           *string `json:"phone"`
	Email           *string `json:"email"`
	ShippingAddress *string `json:"shipping_address"`
	BillingAddress  *string `json:"billing_address"`
	WantsNewsletter *bool   `json:"wants_newsletter"`
	ProfileImage    *string `json:"profile_image"`
}

type AdminCreateInput struct {
	UserID          uint    `json:"user_id" binding:"required"`
	Phone           string  `json:"phone"`
	Email           string  `json:"email"`
	ShippingAddress string  `json:"shipping_address"`
	BillingAddress  string  `json:"billing_address"`
	Points          int     `json:"points"`
	MembershipLevel string  `json:"membership_level"`
	WantsNewsletter bool    `json:"wants_newsletter"`
	ProfileImage    *string `json:"profile_image"`
}

type AdminUpdateInput struct {
	Phone           *string `json:"phone"`
	Email           *string `json:"email"`
	ShippingAddress *string `json:"shipping_address"`
	BillingAddress  *string `json:"billing_address"`
	Points          *int    `json:"points"`
	MembershipLevel *string `json:"membership_level"`
	WantsNewsletter *bool   `json:"wants_newsletter"`
	ProfileImage    *string `json:"profile_image"`
}
