package repository

import (
	"errors"

	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"gorm.io/gorm"
)

// CreateUser creates a new user
func CreateUser(user *model.User) error {
	return db.Create(user).Error
}

// GetUserByID returns a user by ID, nil when not found
func GetUserByID(userID uint) (*model.User, error) {
	var user model.User

	err := db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByUsername returns a user by username, nil when not found
func GetUserByUsername(username string) (*model.User, error) {
	var user model.User

	err := db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UserExists checks if a user exists by username
func UserExists(username string) (bool, error) {
	var count int64

	err := db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// UpdateUser persists changes to a user
func UpdateUser(user *model.User) error {
	return db.Save(user).Error
}

// DeleteUser deletes a user by ID and reports whether a row was removed
func DeleteUser(userID uint) (bool, error) {
	result := db.Delete(&model.User{}, userID)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// GetAllUsers returns all users ordered by ID
func GetAllUsers() ([]model.User, error) {
	var users []model.User

	err := db.Order("id").Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}

// Users returns the base user query for the users data table
func Users() *gorm.DB {
	return db.Model(&model.User{})
}
