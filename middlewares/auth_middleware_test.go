package middlewares

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dinescan/restaurant-backend/models"
	"github.com/dinescan/restaurant-backend/utils"
)

func setupAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func TestAuthMiddlewareBearerHeader(t *testing.T) {
	utils.InitLogger()
	r := setupAuthTestRouter()

	token, err := utils.GenerateToken(42, models.RoleWaiter)
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareCookie(t *testing.T) {
	utils.InitLogger()
	r := setupAuthTestRouter()

	token, err := utils.GenerateToken(42, models.RoleWaiter)
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthTokenCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

// Websocket clients cannot set headers; the token rides the query string.
func TestAuthMiddlewareQueryToken(t *testing.T) {
	utils.InitLogger()
	r := setupAuthTestRouter()

	token, err := utils.GenerateToken(42, models.RoleChef)
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/protected?token="+token, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	utils.InitLogger()
	r := setupAuthTestRouter()

	req, _ := http.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBlacklistedToken(t *testing.T) {
	utils.InitLogger()
	r := setupAuthTestRouter()

	token, err := utils.GenerateToken(42, models.RoleWaiter)
	assert.NoError(t, err)
	utils.BlacklistToken(token)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func setupPermissionTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	return r, db
}

func asUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func TestRequirePermissionAdminBypass(t *testing.T) {
	utils.InitLogger()
	r, db := setupPermissionTestRouter(t)

	admin := models.User{Name: "Root", Email: "root@dinescan.local", Password: "x", Role: models.RoleAdmin, IsActive: true}
	assert.NoError(t, db.Create(&admin).Error)

	r.GET("/users", asUser(admin.ID), RequirePermission(db, models.PermManageUsers), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/users", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermissionDeniedFlag(t *testing.T) {
	utils.InitLogger()
	r, db := setupPermissionTestRouter(t)

	waiter := models.User{
		Name: "Asep", Email: "asep@dinescan.local", Password: "x",
		Role: models.RoleWaiter, Permissions: models.DefaultPermissions(models.RoleWaiter), IsActive: true,
	}
	assert.NoError(t, db.Create(&waiter).Error)

	r.GET("/bills", asUser(waiter.ID), RequirePermission(db, models.PermManageBills), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/bills", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePermissionDeactivatedUser(t *testing.T) {
	utils.InitLogger()
	r, db := setupPermissionTestRouter(t)

	user := models.User{
		Name: "Asep", Email: "asep@dinescan.local", Password: "x",
		Role: models.RoleManager, Permissions: models.DefaultPermissions(models.RoleManager),
	}
	assert.NoError(t, db.Create(&user).Error)
	assert.NoError(t, db.Model(&user).Update("is_active", false).Error)

	r.GET("/menu", asUser(user.ID), RequirePermission(db, models.PermManageMenu), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/menu", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePermissionNoIdentity(t *testing.T) {
	utils.InitLogger()
	r, db := setupPermissionTestRouter(t)

	r.GET("/menu", RequirePermission(db, models.PermManageMenu), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/menu", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
