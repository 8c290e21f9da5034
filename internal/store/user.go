package store

import (
	"context"
	"encoding/json"
	"strings"

	"ot-grc/internal/models"
)

// UserContextProvider отдаёт текущего пользователя; никогда не падает
type UserContextProvider interface {
	CurrentUser(ctx context.Context) models.UserContext
}

type currentUserRecord struct {
	Title string `json:"title"`
	Role  string `json:"role"`
}

// StoreUsers читает запись currentUser из того же хранилища.
// Нет записи или битый JSON -> пустой контекст.
type StoreUsers struct {
	Store Store
}

func (p StoreUsers) CurrentUser(ctx context.Context) models.UserContext {
	raw, err := p.Store.Get(ctx, KeyCurrentUser)
	if err != nil {
		return models.UserContext{}
	}
	var rec currentUserRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return models.UserContext{}
	}
	return models.UserContext{
		UserTitle: nonEmpty(rec.Title),
		UserRole:  nonEmpty(rec.Role),
	}
}

// SetCurrentUser записывает currentUser (CLI, тесты)
func SetCurrentUser(ctx context.Context, s Store, title, role string) error {
	data, err := json.Marshal(currentUserRecord{Title: title, Role: role})
	if err != nil {
		return err
	}
	return s.Set(ctx, KeyCurrentUser, data)
}

// StaticUser — фиксированный пользователь, например из сессии HTTP
type StaticUser models.UserContext

func (u StaticUser) CurrentUser(context.Context) models.UserContext {
	return models.UserContext(u)
}

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
