package service

import (
	"CloudVault/internal/repo"
	"CloudVault/model"
	"CloudVault/utils"
	"errors"
	"regexp"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9._-]+\.[a-zA-Z0-9_-]+$`)

// CreateUser hashes the password and stores a new user.
func CreateUser(user *model.User) error {
	hash, err := utils.GetPwd(user.Password)
	if err != nil {
		return err
	}
	user.Password = hash
	return repo.Db.Create(user).Error
}

// ExistsByUsername reports whether a username is taken.
func ExistsByUsername(username string) (bool, error) {
	var count int64
	if err := repo.Db.Model(&model.User{}).Where("user_name = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByEmail reports whether an email is taken.
func ExistsByEmail(email string) (bool, error) {
	var count int64
	if err := repo.Db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByUsername returns the user with the given username.
func FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := repo.Db.Where("user_name = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns the user with the given email.
func FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := repo.Db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIdentity resolves a login identity to a user. An email-shaped
// identity is looked up by email, anything else by username.
func FindByIdentity(identity string) (*model.User, error) {
	if emailPattern.MatchString(identity) {
		return FindByEmail(identity)
	}
	return FindByUsername(identity)
}

// CheckPassword verifies a plaintext password against the stored hash.
func CheckPassword(user *model.User, password string) error {
	if !utils.CheckPwd(password, user.Password) {
		return errors.New("password error")
	}
	return nil
}
