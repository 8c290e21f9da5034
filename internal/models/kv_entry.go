package models

import "time"

// KVEntry — строка таблицы key-value хранилища оценок
type KVEntry struct {
	Key       string `gorm:"column:kv_key;primaryKey;size:191"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}
