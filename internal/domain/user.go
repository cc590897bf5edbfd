package domain

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleStaff   Role = "STAFF"
	RoleAdmin   Role = "ADMIN"
)

// CanApprove reports whether the role may issue registration and attendance
// decisions.
func (r Role) CanApprove() bool {
	return r == RoleStaff || r == RoleAdmin
}

type User struct {
	ID           int32  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	CreatedOn    string `json:"created_on"`
}

// Actor is the authenticated identity a command is executed as.
type Actor struct {
	UserID int32 `json:"user_id"`
	Role   Role  `json:"role"`
}
