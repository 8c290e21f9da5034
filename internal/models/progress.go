package models

import "time"

// Progress — прогресс по стадиям, хранится отдельно от содержимого оценки
type Progress struct {
	CurrentStage int       `json:"currentStage"`
	LastUpdated  time.Time `json:"lastUpdated"`
	UserTitle    *string   `json:"userTitle"`
	UserRole     *string   `json:"userRole"`
}

// UserContext — кто сейчас работает с оценкой. nil-поля: пользователь неизвестен.
type UserContext struct {
	UserTitle *string `json:"userTitle"`
	UserRole  *string `json:"userRole"`
}
