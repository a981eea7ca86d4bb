package handler

import (
	"net/http"
	"strconv"
	"testing"

	"Foodgram/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestTags(t *testing.T) {
	s := newTestServer(t)
	tag, _, _ := s.seedCatalog(t)

	w := s.do(t, http.MethodGet, "/api/tags", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "breakfast", gjson.Get(w.Body.String(), "data.0.slug").String())

	w = s.do(t, http.MethodGet, "/api/tags/"+strconv.FormatUint(tag.ID, 10), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Breakfast", gjson.Get(w.Body.String(), "data.name").String())

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/tags/42", "", nil).Code)
}

func TestIngredientSearch(t *testing.T) {
	s := newTestServer(t)
	s.seedCatalog(t)
	require.NoError(t, s.db.Create(&models.Ingredient{Name: "Fennel", MeasurementUnit: "g"}).Error)

	w := s.do(t, http.MethodGet, "/api/ingredients?name=F", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	names := gjson.Get(w.Body.String(), "data.#.name").Array()
	require.Len(t, names, 2)
	assert.Equal(t, "Fennel", names[0].String())
	assert.Equal(t, "flour", names[1].String())

	w = s.do(t, http.MethodGet, "/api/ingredients", "", nil)
	assert.Len(t, gjson.Get(w.Body.String(), "data").Array(), 3)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/ingredients/0", "", nil).Code)
}
