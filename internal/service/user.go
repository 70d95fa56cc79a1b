package service

import (
	"github.com/mal2-project/fake-shop-detection-database/internal/datatable"
	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"github.com/mal2-project/fake-shop-detection-database/internal/repository"
)

// UsersTable is the account administration table
func UsersTable() *datatable.Spec {
	return &datatable.Spec{
		Table: "users",
		PK:    "users.id",
		RowID: "id",
		Fields: []datatable.Field{
			{Data: "id", Column: "users.id", Hidden: true},
			{Data: "username", Column: "users.username", Label: "Username", ResponsivePriority: 1},
			{Data: "first_name", Column: "users.first_name", Label: "First name"},
			{Data: "last_name", Column: "users.last_name", Label: "Last name"},
			{Data: "email", Column: "users.email", Label: "Email"},
			{Data: "role", Column: "users.role", Label: "Role", Regex: true},
			{Data: "is_active", Column: "users.is_active", Label: "Active", Boolean: true},
			{Data: "last_login", Column: "users.last_login", Label: "Last login"},
		},
		Actions: []datatable.Action{
			{Name: "edit", Href: "/db/user/%v/edit/", IDPath: "id", Label: "Edit user",
				Icon: `<i class="material-icons">edit</i>`, Permissions: []string{"user.change"}},
			{Name: "set_password", Href: "/db/user/%v/set-password/", IDPath: "id", Label: "Set password",
				Icon: `<i class="material-icons">vpn_key</i>`, Permissions: []string{"user.change"}},
			{Name: "delete", Href: "/db/user/%v/delete/", IDPath: "id", Label: "Delete user",
				Icon: `<i class="material-icons">delete</i>`, Danger: true, Permissions: []string{"user.delete"}},
		},
		Add: &datatable.Action{
			Href:        "/db/users/add/",
			Label:       "Add user",
			Permissions: []string{"user.add"},
		},
		DefaultOrder: `[[1, "asc"]]`,
	}
}

// CreateUserAccount creates an account from the admin's add user dialog
func CreateUserAccount(form *model.UserForm) (*model.User, error) {
	exists, err := repository.UserExists(form.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hash, err := HashPassword(form.Password)
	if err != nil {
		return nil, err
	}

	role := form.Role
	if role == "" {
		role = model.RoleInvestigator
	}

	active := true
	if form.IsActive != nil {
		active = *form.IsActive
	}

	user := &model.User{
		Username:  form.Username,
		Password:  hash,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Role:      role,
		IsActive:  active,
	}

	if err := repository.CreateUser(user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUserAccount applies the admin's edit user dialog. The password is
// changed through SetUserPassword only.
func UpdateUserAccount(userID uint, form *model.UserForm) (*model.User, error) {
	user, err := repository.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if form.Username != user.Username {
		exists, err := repository.UserExists(form.Username)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrUsernameExists
		}
		user.Username = form.Username
	}

	user.Email = form.Email
	user.FirstName = form.FirstName
	user.LastName = form.LastName

	if form.Role != "" {
		user.Role = form.Role
	}
	if form.IsActive != nil {
		user.IsActive = *form.IsActive
	}

	if err := repository.UpdateUser(user); err != nil {
		return nil, err
	}

	return user, nil
}

// SetUserPassword replaces a user's password
func SetUserPassword(userID uint, password string) error {
	user, err := repository.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	user.Password = hash

	return repository.UpdateUser(user)
}

// DeleteUserAccount removes an account
func DeleteUserAccount(userID uint) error {
	removed, err := repository.DeleteUser(userID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrUserNotFound
	}

	return nil
}
