package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"recipe_share/internal/config"
	"recipe_share/internal/domain"
	"recipe_share/internal/session"
	"recipe_share/internal/upload"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv bundles everything a handler test needs
type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	store     *session.MemoryStore
	uploadDir string
}

// newTestEnv builds a router over an in-memory database, an in-memory
// session store and a temporary upload directory.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	// Each test gets its own named in-memory database so connections from
	// gorm's pool all see the same data
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.User{}, &domain.Recipe{}, &domain.Comment{}, &domain.Rating{}))

	store := session.NewMemoryStore(time.Hour)
	dir := t.TempDir()
	uploads, err := upload.NewStore(dir)
	require.NoError(t, err)

	cfg := &config.Config{
		CookieSecure: false,
		SessionTTL:   time.Hour,
		RedisAddr:    "localhost:6379",
	}
	return &testEnv{
		router:    NewRouter(gdb, store, uploads, cfg),
		db:        gdb,
		store:     store,
		uploadDir: dir,
	}
}

// createUser inserts a user with a bcrypt-hashed password
func (e *testEnv) createUser(t *testing.T, username, password string, admin bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{Username: username, Password: string(hash), IsAdmin: admin}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

// sessionCookie logs userID in through the session store and returns the cookie
func (e *testEnv) sessionCookie(t *testing.T, userID uint) *http.Cookie {
	t.Helper()
	token, err := e.store.Create(context.Background(), userID)
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: token}
}

// do runs a request through the router and returns the recorder
func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// jsonRequest builds a request carrying a JSON body
func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// multipartForm builds a multipart body with fields and an optional file
func multipartForm(t *testing.T, fields map[string]string, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		fw, err := w.CreateFormFile("image_file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}
