package middleware

import (
	"ot-grc/internal/assessment"
	"ot-grc/internal/database"
	"ot-grc/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// InjectUser кладёт пользователя сессии в gin-контекст и в context запроса —
// движок оценки пишет его должность и роль в прогресс стадий.
func InjectUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uidRaw := sess.Get("user_id"); uidRaw != nil && database.DB != nil {
			if uid, ok := uidRaw.(uint); ok && uid > 0 {
				var user models.User
				if err := database.DB.First(&user, uid).Error; err == nil {
					c.Set("CurrentUser", user)
					ctx := assessment.WithUser(c.Request.Context(), user.Context())
					c.Request = c.Request.WithContext(ctx)
				}
			}
		}

		c.Next()
	}
}
