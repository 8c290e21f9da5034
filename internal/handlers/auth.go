package handlers

import (
	"net/http"
	"strings"

	"ot-grc/internal/database"
	"ot-grc/internal/models"
	"ot-grc/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type registerForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
	Title    string `form:"title" json:"title"`
	Role     string `form:"role" json:"role"`
}

func Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	form.Username = strings.TrimSpace(form.Username)
	if len(form.Username) < 3 || len(form.Password) < 6 {
		badRequest(c, "username or password too short")
		return
	}

	role := models.UserRole(form.Role)

	// через форму можно регистрировать только engineer / viewer,
	// admin и auditor заводятся администратором
	switch role {
	case models.RoleEngineer, models.RoleViewer:
		// ок
	default:
		badRequest(c, "invalid role")
		return
	}

	var existing models.User
	if err := database.DB.Where("username = ?", form.Username).First(&existing).Error; err == nil {
		render(c, http.StatusConflict, gin.H{"error": "user already exists"})
		return
	}

	user, err := database.CreateUser(form.Username, form.Password, strings.TrimSpace(form.Title), role)
	if err != nil {
		render(c, http.StatusInternalServerError, gin.H{"error": "failed to save user"})
		return
	}

	database.CreateAuditLog(user.ID, "user", user.Username, "create", "User registered with role "+string(role))
	render(c, http.StatusCreated, gin.H{"username": user.Username, "role": user.Role})
}

type loginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Login открывает сессию и запоминает участника оценки в хранилище
func (api *API) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", form.Username).First(&user).Error; err != nil {
		render(c, http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		render(c, http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	sess := sessions.Default(c)
	sess.Set("user_id", user.ID)
	sess.Set("role", string(user.Role))
	_ = sess.Save()

	uc := user.Context()
	if api.Store != nil {
		_ = store.SetCurrentUser(c.Request.Context(), api.Store, *uc.UserTitle, *uc.UserRole)
	}

	render(c, http.StatusOK, gin.H{"username": user.Username, "role": user.Role})
}

func Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	render(c, http.StatusOK, gin.H{"loggedOut": true})
}
