package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavorites(t *testing.T) {
	r, _ := setupRouter(t)
	signup(t, r, "ana@example.com", "s3creta")
	signup(t, r, "luis@example.com", "s3creta")
	ana := login(t, r, "ana@example.com", "s3creta")
	luis := login(t, r, "luis@example.com", "s3creta")
	id := createRecipe(t, r, ana, "Tortilla")

	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodGet, "/recipe_favorite", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodPost, "/recipe_favorite", luis, map[string]uint{"receta_id": 999}).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodPost, "/recipe_favorite", luis, map[string]uint{}).Code)

	w := doJSON(t, r, http.MethodPost, "/recipe_favorite", luis, map[string]uint{"receta_id": id})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	favID := uint(decode(t, w)["id"].(float64))

	assert.Equal(t, http.StatusConflict, doJSON(t, r, http.MethodPost, "/recipe_favorite", luis, map[string]uint{"receta_id": id}).Code)

	w = doJSON(t, r, http.MethodGet, "/recipe_favorite", luis, nil)
	require.Equal(t, http.StatusOK, w.Code)
	favs := decode(t, w)["favoritas"].([]any)
	require.Len(t, favs, 1)
	receta := favs[0].(map[string]any)["receta"].(map[string]any)
	assert.Equal(t, "Tortilla", receta["titulo"])

	w = doJSON(t, r, http.MethodGet, "/recipe_favorite", ana, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["favoritas"])

	path := fmt.Sprintf("/recipe_favorite/%d", favID)
	assert.Equal(t, http.StatusForbidden, doJSON(t, r, http.MethodDelete, path, ana, nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodDelete, path, luis, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodDelete, path, luis, nil).Code)
}
