package model

import "time"

type User struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	UserName string `gorm:"column:user_name;type:varchar(50);not null;unique" json:"username"`

	Email string `gorm:"column:email;type:varchar(255);not null;unique" json:"email"`

	Password string `gorm:"column:pass_word;type:varchar(255);not null" json:"-"`

	FirstName string `gorm:"column:first_name;type:varchar(80);not null;default:''" json:"first_name"`
	LastName  string `gorm:"column:last_name;type:varchar(80);not null;default:''" json:"last_name"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "users"
}
