package prefs

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFallsBack(t *testing.T) {
	p := Resolve("comic-sans", "")
	assert.Equal(t, "outfit", p.Font.ID)
	assert.Equal(t, "brand", p.Accent.ID)
	assert.Equal(t, "#465FFF", p.Accent.Hex)

	p = Resolve("space-grotesk", "rose")
	assert.Equal(t, "Space Grotesk", p.Font.Name)
	assert.Equal(t, "rose", p.Accent.ID)
}

func TestCatalogSizes(t *testing.T) {
	assert.Len(t, Fonts, 8)
	assert.Equal(t, DefaultFont, Fonts[0].ID)
}

func TestSaveAndRead(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/preferences", nil)
	got := Save(c, "lexend", "nope", false)
	assert.Equal(t, "lexend", got.Font.ID)
	assert.Equal(t, "brand", got.Accent.ID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = req
	p := FromRequest(c2)
	assert.Equal(t, "lexend", p.Font.ID)
	assert.Equal(t, "brand", p.Accent.ID)
}
