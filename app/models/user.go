package models

import "gorm.io/gorm"

// Roles a user can hold. Clients place orders; the shop works the queue.
const (
	RoleClient = "client"
	RoleShop   = "shop"
)

// User is an account on the platform. Email doubles as the login key and
// must carry the institutional domain; the student ID, when present, is
// the trailing digit run of the email's local part.
type User struct {
	gorm.Model
	FullName  string `gorm:"size:255;not null" json:"full_name"`
	Email     string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"` // hashed, never serialised
	Phone     string `gorm:"size:30" json:"phone"`
	Role      string `gorm:"size:20;default:client" json:"role"`
	// Pointer so accounts without a student ID (shop staff) store NULL and
	// don't collide on the unique index.
	StudentID *string `gorm:"column:student_id;uniqueIndex;size:30" json:"student_id,omitempty"`
}
