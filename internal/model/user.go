package model

import "time"

// User roles. Permissions are derived from the role, the admin seed user is
// created with RoleAdmin at migration time.
const (
	RoleAdmin        = "admin"
	RoleInvestigator = "investigator"
	RoleReadOnly     = "readonly"
)

// User represents a back-office account
type User struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Username  string     `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Password  string     `json:"-" gorm:"column:password_hash;not null"`
	Email     string     `json:"email" gorm:"size:254"`
	FirstName string     `json:"first_name" gorm:"size:150"`
	LastName  string     `json:"last_name" gorm:"size:150"`
	Role      string     `json:"role" gorm:"size:32;default:investigator"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"date_joined"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsSuperuser reports whether the user holds the admin role
func (u *User) IsSuperuser() bool {
	return u.Role == RoleAdmin
}

var rolePermissions = map[string][]string{
	RoleAdmin: {
		"website.view", "website.add", "website.change", "website.delete", "website.check",
		"fakeshop.view", "fakeshop.add", "fakeshop.change", "fakeshop.delete",
		"counterfeiter.view", "counterfeiter.add", "counterfeiter.change", "counterfeiter.delete",
		"user.view", "user.add", "user.change", "user.delete",
	},
	RoleInvestigator: {
		"website.view", "website.add", "website.change", "website.delete", "website.check",
		"fakeshop.view", "fakeshop.add", "fakeshop.change", "fakeshop.delete",
		"counterfeiter.view", "counterfeiter.add", "counterfeiter.change", "counterfeiter.delete",
	},
	RoleReadOnly: {
		"website.view",
		"fakeshop.view",
		"counterfeiter.view",
	},
}

// HasPerms reports whether the user holds every listed permission. An empty
// permission list always grants access.
func HasPerms(user *User, permissions []string) bool {
	if len(permissions) == 0 {
		return true
	}
	if user == nil || !user.IsActive {
		return false
	}

	granted := rolePermissions[user.Role]

	for _, permission := range permissions {
		found := false
		for _, have := range granted {
			if have == permission {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// UserRegister represents a signup request
type UserRegister struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email"`
}

// UserForm carries the fields of the admin's add and edit user dialogs
type UserForm struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	IsActive  *bool  `json:"is_active"`
}

// UserLogin represents a signin request
type UserLogin struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents a JWT token response
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	User        *UserInfo `json:"user"`
}

// UserInfo represents basic user info (for the token response)
type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
