package domain

type Role string

const (
	RoleBuyer  Role = "BUYER"
	RoleVendor Role = "VENDOR"
	RoleAdmin  Role = "ADMIN"
)

// ParseRole accepts the three known role tags.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleBuyer, RoleVendor, RoleAdmin:
		return r, true
	}
	return "", false
}

type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

type User struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       Role     `json:"role"`
	AvatarURL  string   `json:"avatarUrl"`
	Age        *int     `json:"age,omitempty"`
	Gender     string   `json:"gender,omitempty"`
	Address    *Address `json:"address,omitempty"`
	IsVerified bool     `json:"isVerified,omitempty"`
}
