package models

import "gorm.io/gorm"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEngineer UserRole = "engineer"
	RoleAuditor  UserRole = "auditor" // читает оценку и журнал аудита
	RoleViewer   UserRole = "viewer"
)

type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:50;not null"`
	Title        string   `gorm:"size:255"` // должность, попадает в прогресс оценки
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null"`
}

// Context — пользователь как участник оценки
func (u User) Context() UserContext {
	title := u.Title
	if title == "" {
		title = u.Username
	}
	role := string(u.Role)
	return UserContext{UserTitle: &title, UserRole: &role}
}
