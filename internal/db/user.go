package db

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User 定义了后台用户模型，Role 决定是否可进入后台。
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:100;unique;not null"`
	Password  string `gorm:"not null"`
	Role      string `gorm:"size:20;not null;default:viewer"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the user may use the admin area.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// CheckPassword compares a plain password with the stored bcrypt hash.
func (u *User) CheckPassword(password string) bool {
	if u == nil || u.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// HashPassword returns the bcrypt hash used for User.Password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// EnsureAdmin 存在性检查：若用户名与密码均非空且不存在对应账号，则创建 admin 角色用户。
// An existing account with that name is left untouched.
func EnsureAdmin(gdb *gorm.DB, username, password string) error {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return nil
	}

	if gdb == nil {
		return errors.New("database not initialized")
	}

	var existing User
	if err := gdb.Where("username = ?", trimmedUser).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := HashPassword(trimmedPassword)
		if err != nil {
			return err
		}

		return gdb.Create(&User{Username: trimmedUser, Password: hashed, Role: RoleAdmin}).Error
	}

	return nil
}
