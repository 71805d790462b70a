package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	FirstName string
	LastName  string
	Timezone  string `gorm:"size:64;default:'UTC'"` // IANA name, used for end-of-day expiry
	Disabled  bool
}
