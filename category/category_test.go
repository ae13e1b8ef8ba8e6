package category

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames_FixedOrder(t *testing.T) {
	assert.Equal(t, []string{"Transfer between cards", "Cash withdrawn", "Food", "Taxes", "Rent"}, Names())
	assert.Len(t, Colors(), len(Names()))
}

func TestAll_ReturnsCopy(t *testing.T) {
	cats := All()
	cats[0].Name = "Groceries"
	assert.Equal(t, TransferBetweenCards, All()[0].Name)
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown(Food))
	assert.True(t, IsKnown("Rent"))
	assert.False(t, IsKnown("rent"))
	assert.False(t, IsKnown("Travel"))
}

func TestHandleGetCategories(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/categories", NewHandler().HandleGetCategories)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got []Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 5)
	assert.Equal(t, Taxes, got[3].Name)
	assert.Equal(t, "fa-house", got[4].IconName)
}
