package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"erp-console/internal/access"
)

const loadingTemplate = "loading.html"

// Guard evaluates the access table for the matched route on every request.
// observe, when set, is told every verdict.
func Guard(observe func(verdict string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		resolved, who := false, access.Identity{}
		if store := Store(c); store != nil {
			snap := store.Snapshot()
			resolved = snap.Resolved
			who = access.Identity{Authenticated: snap.Authenticated(), Role: snap.Role()}
		}

		d := access.Evaluate(resolved, who, c.FullPath())
		if observe != nil {
			observe(d.Verdict.String())
		}

		switch d.Verdict {
		case access.Granted:
			c.Next()
		case access.Pending:
			c.Header("Refresh", "1")
			c.HTML(http.StatusOK, loadingTemplate, gin.H{"Path": c.Request.URL.Path})
			c.Abort()
		default:
			deny(c, d.Redirect)
		}
	}
}

// deny sends the browser to target. Script requests get a status code and the
// target in a header instead of a redirect they would silently follow.
func deny(c *gin.Context, target string) {
	if IsFetch(c) {
		status := http.StatusForbidden
		if target == access.LoginPath {
			status = http.StatusUnauthorized
		}
		c.Header("X-Redirect", target)
		c.AbortWithStatus(status)
		return
	}
	status := http.StatusFound
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		status = http.StatusSeeOther
	}
	c.Redirect(status, target)
	c.Abort()
}

// RedirectToLogin is used by handlers after the API rejected the session.
func RedirectToLogin(c *gin.Context) {
	AddFlash(c, FlashInfo, "Your session has expired. Please sign in again.")
	deny(c, access.LoginPath)
}
