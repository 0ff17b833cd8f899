// Package prefs holds the two display preferences kept in plain cookies. They
// never reach the ERP API.
package prefs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	FontCookie   = "app-font"
	AccentCookie = "app-accent"

	DefaultFont   = "outfit"
	DefaultAccent = "brand"

	cookieMaxAge = int(365 * 24 * time.Hour / time.Second)
)

type Font struct {
	ID       string
	Name     string
	Provider string
}

var Fonts = []Font{
	{ID: "outfit", Name: "Outfit (Default)", Provider: "Google Fonts"},
	{ID: "inter", Name: "Inter", Provider: "Google Fonts"},
	{ID: "roboto", Name: "Roboto", Provider: "Google Fonts"},
	{ID: "poppins", Name: "Poppins", Provider: "Google Fonts"},
	{ID: "baskerville", Name: "Libre Baskerville", Provider: "Google Fonts"},
	{ID: "playfair", Name: "Playfair Display", Provider: "Google Fonts"},
	{ID: "lexend", Name: "Lexend", Provider: "Google Fonts"},
	{ID: "space-grotesk", Name: "Space Grotesk", Provider: "Google Fonts"},
}

type Accent struct {
	ID   string
	Name string
	Hex  string
}

var Accents = []Accent{
	{ID: "brand", Name: "Brand", Hex: "#465FFF"},
	{ID: "indigo", Name: "Indigo", Hex: "#6366F1"},
	{ID: "emerald", Name: "Emerald", Hex: "#10B981"},
	{ID: "rose", Name: "Rose", Hex: "#F43F5E"},
	{ID: "amber", Name: "Amber", Hex: "#F59E0B"},
	{ID: "violet", Name: "Violet", Hex: "#8B5CF6"},
	{ID: "teal", Name: "Teal", Hex: "#14B8A6"},
	{ID: "slate", Name: "Slate", Hex: "#475569"},
}

type Prefs struct {
	Font   Font
	Accent Accent
}

func lookupFont(id string) (Font, bool) {
	for _, f := range Fonts {
		if f.ID == id {
			return f, true
		}
	}
	return Font{}, false
}

func lookupAccent(id string) (Accent, bool) {
	for _, a := range Accents {
		if a.ID == id {
			return a, true
		}
	}
	return Accent{}, false
}

// Resolve maps ids to catalog entries. Unknown ids fall back to the defaults.
func Resolve(fontID, accentID string) Prefs {
	f, ok := lookupFont(fontID)
	if !ok {
		f, _ = lookupFont(DefaultFont)
	}
	a, ok := lookupAccent(accentID)
	if !ok {
		a, _ = lookupAccent(DefaultAccent)
	}
	return Prefs{Font: f, Accent: a}
}

func FromRequest(c *gin.Context) Prefs {
	font, _ := c.Cookie(FontCookie)
	accent, _ := c.Cookie(AccentCookie)
	return Resolve(font, accent)
}

// Save writes both cookies. Unknown ids are stored as their defaults.
func Save(c *gin.Context, fontID, accentID string, secure bool) Prefs {
	p := Resolve(fontID, accentID)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FontCookie, p.Font.ID, cookieMaxAge, "/", "", secure, false)
	c.SetCookie(AccentCookie, p.Accent.ID, cookieMaxAge, "/", "", secure, false)
	return p
}
