package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"recipe_share/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recipeFields = map[string]string{
	"name":         "Chocolate Cake",
	"ingredients":  "flour, sugar, cocoa",
	"instructions": "mix and bake",
}

func TestAdminRoutesForbiddenForNonAdmin(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice", "secret1", false)
	cookie := env.sessionCookie(t, user.ID)

	body, contentType := multipartForm(t, recipeFields, "", "")
	add := httptest.NewRequest(http.MethodPost, "/add_recipe", body)
	add.Header.Set("Content-Type", contentType)

	requests := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/admin_dashboard", nil),
		add,
		httptest.NewRequest(http.MethodPost, "/update_recipe/1", nil),
		httptest.NewRequest(http.MethodPost, "/delete_recipe/1", nil),
	}
	for _, req := range requests {
		req.AddCookie(cookie)
		assert.Equal(t, http.StatusForbidden, env.do(req).Code, req.URL.Path)
	}

	// Storage is unchanged
	var count int64
	require.NoError(t, env.db.Model(&domain.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddRecipeWithImage(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin", "secret1", true)

	body, contentType := multipartForm(t, recipeFields, "my cake photo!.png", "png bytes")
	req := httptest.NewRequest(http.MethodPost, "/add_recipe", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(env.sessionCookie(t, admin.ID))

	w := env.do(req)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin_dashboard", w.Header().Get("Location"))

	var recipe domain.Recipe
	require.NoError(t, env.db.First(&recipe).Error)
	assert.Equal(t, "Chocolate Cake", recipe.Name)
	// The stored reference is the sanitized filename, never a path
	assert.Equal(t, "my_cake_photo_.png", recipe.ImageFilename)

	// The file landed in the upload directory under that name
	data, err := os.ReadFile(filepath.Join(env.uploadDir, recipe.ImageFilename))
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(data))
}

func TestAddRecipeWithoutImage(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin", "secret1", true)

	body, contentType := multipartForm(t, recipeFields, "", "")
	req := httptest.NewRequest(http.MethodPost, "/add_recipe", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(env.sessionCookie(t, admin.ID))

	// A missing image must not fail the creation
	require.Equal(t, http.StatusFound, env.do(req).Code)

	var recipe domain.Recipe
	require.NoError(t, env.db.First(&recipe).Error)
	assert.Empty(t, recipe.ImageFilename)
}

func TestAddRecipeValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin", "secret1", true)

	fields := map[string]string{"name": "   ", "ingredients": "flour", "instructions": "bake"}
	body, contentType := multipartForm(t, fields, "", "")
	req := httptest.NewRequest(http.MethodPost, "/add_recipe", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(env.sessionCookie(t, admin.ID))

	assert.Equal(t, http.StatusBadRequest, env.do(req).Code)

	var count int64
	require.NoError(t, env.db.Model(&domain.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateRecipeKeepsImageWithoutReplacement(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin", "secret1", true)
	recipe := &domain.Recipe{Name: "Old Name", Ingredients: "old", Instructions: "old", ImageFilename: "pic.png"}
	require.NoError(t, env.db.Create(recipe).Error)

	body, contentType := multipartForm(t, recipeFields, "", "")
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/update_recipe/%d", recipe.ID), body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(env.sessionCookie(t, admin.ID))

	require.Equal(t, http.StatusFound, env.do(req).Code)

	var updated domain.Recipe
	require.NoError(t, env.db.First(&updated, recipe.ID).Error)
	assert.Equal(t, "Chocolate Cake", updated.Name)
	assert.Equal(t, "flour, sugar, cocoa", updated.Ingredients)
	// No new image supplied, the reference is retained
	assert.Equal(t, "pic.png", updated.ImageFilename)
}

func TestUpdateRecipeReplacesImage(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin", "secret1", true)
	recipe := &domain.Recipe{Name: "Old Name", Ingredients: "old", Instructions: "old", ImageFilename: "pic.png"}
	require.NoError(t, env.db.Create(recipe).Error)

	body, contentType := multipartForm(t, recipeFields, "new.png", "new bytes")
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/update_recipe/%d", recipe.ID), body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(env.sessionCookie(t, admin.ID))

	require.Equal(t, http.StatusFound, env.do(req).Code)

	var updated domain.Recipe
	require.NoError(t, env.db.First(&updated, recipe.ID).Error)
	assert.Equal(t, "new.png", updated.ImageFilename)
}

func TestUpdateNonexistentRecipeRedirects(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin", "secret1", true)

	body, contentType := multipartForm(t, recipeFields, "", "")
	req := httptest.NewRequest(http.MethodPost, "/update_recipe/999", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(env.sessionCookie(t, admin.ID))

	w := env.do(req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin_dashboard", w.Header().Get("Location"))
}

func TestDeleteRecipeCascades(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin", "secret1", true)
	user := env.createUser(t, "alice", "secret1", false)
	recipe := &domain.Recipe{Name: "Chocolate Cake", Ingredients: "flour", Instructions: "bake"}
	require.NoError(t, env.db.Create(recipe).Error)
	require.NoError(t, env.db.Create(&domain.Comment{Content: "Nice", UserID: user.ID, RecipeID: recipe.ID}).Error)
	require.NoError(t, env.db.Create(&domain.Rating{Value: 4, UserID: user.ID, RecipeID: recipe.ID}).Error)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/delete_recipe/%d", recipe.ID), nil)
	req.AddCookie(env.sessionCookie(t, admin.ID))
	w := env.do(req)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin_dashboard", w.Header().Get("Location"))

	var recipes, comments, ratings int64
	require.NoError(t, env.db.Model(&domain.Recipe{}).Count(&recipes).Error)
	require.NoError(t, env.db.Model(&domain.Comment{}).Count(&comments).Error)
	require.NoError(t, env.db.Model(&domain.Rating{}).Count(&ratings).Error)
	assert.Zero(t, recipes)
	assert.Zero(t, comments)
	assert.Zero(t, ratings)
}

func TestDeleteNonexistentRecipe(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin", "secret1", true)
	recipe := &domain.Recipe{Name: "Chocolate Cake", Ingredients: "flour", Instructions: "bake"}
	require.NoError(t, env.db.Create(recipe).Error)

	req := httptest.NewRequest(http.MethodPost, "/delete_recipe/999", nil)
	req.AddCookie(env.sessionCookie(t, admin.ID))
	w := env.do(req)

	// No error, no change
	assert.Equal(t, http.StatusFound, w.Code)
	var count int64
	require.NoError(t, env.db.Model(&domain.Recipe{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDashboardListsRecipes(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin", "secret1", true)
	require.NoError(t, env.db.Create(&domain.Recipe{Name: "Chocolate Cake", Ingredients: "flour", Instructions: "bake"}).Error)

	req := httptest.NewRequest(http.MethodGet, "/admin_dashboard", nil)
	req.AddCookie(env.sessionCookie(t, admin.ID))
	w := env.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Chocolate Cake")
}

func TestDebugEndpointGated(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin", "secret1", true)
	user := env.createUser(t, "alice", "secret1", false)

	// Anonymous and non-admin callers are kept out
	assert.Equal(t, http.StatusUnauthorized, env.do(httptest.NewRequest(http.MethodGet, "/debug", nil)).Code)

	req := httptest.NewRequest(http.MethodGet, "/debug", nil)
	req.AddCookie(env.sessionCookie(t, user.ID))
	assert.Equal(t, http.StatusForbidden, env.do(req).Code)

	req = httptest.NewRequest(http.MethodGet, "/debug", nil)
	req.AddCookie(env.sessionCookie(t, admin.ID))
	w := env.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	// Password hashes never leave the server
	assert.NotContains(t, w.Body.String(), admin.Password)
}

func TestSecurityReport(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(httptest.NewRequest(http.MethodGet, "/test-security", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "session_cookie_httponly")
	assert.Contains(t, w.Body.String(), "session_cookie_samesite")
}
