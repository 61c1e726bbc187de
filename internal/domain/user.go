package domain

// UserType distinguishes administrators from regular staff accounts.
type UserType string

const (
	UserTypeAdmin UserType = "Admin"
	UserTypeUser  UserType = "User"
)

// Label is the sidebar caption for the user type.
func (t UserType) Label() string {
	if t == UserTypeAdmin {
		return "Administrator"
	}
	return "User"
}

// User is the signed-in staff member as kept in the session.
type User struct {
	UserName string
	Type     UserType
}

// IsAdmin reports whether the user may see administrative navigation.
func (u *User) IsAdmin() bool {
	return u != nil && u.Type == UserTypeAdmin
}
