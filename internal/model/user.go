package model

// User represents an account in the system
type User struct {
	ID        int    `json:"id" db:"id"`
	Name      string `json:"name,omitempty" db:"name"`
	Username  string `json:"username" db:"username"`
	Password  string `json:"-" db:"password_hash"` // Don't serialize password
	CreatedAt string `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty" db:"updated_at"`
}

// UserSignup represents a signup request
type UserSignup struct {
	Name     string `json:"name"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserSignin represents a signin request
type UserSignin struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserInfo represents basic user info returned to clients
type UserInfo struct {
	ID       int    `json:"id"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username"`
}

// Info strips everything a client should not see
func (u User) Info() UserInfo {
	return UserInfo{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
	}
}
