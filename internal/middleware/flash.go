package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	FlashInfo    FlashKind = "info"
)

type Flash struct {
	Kind    FlashKind
	Message string
}

// AddFlash queues a one-shot notification for the next rendered page.
func AddFlash(c *gin.Context, kind FlashKind, msg string) {
	s := sessions.Default(c)
	s.AddFlash(string(kind) + ":" + msg)
	_ = s.Save()
}

// Flashes pops every queued notification.
func Flashes(c *gin.Context) []Flash {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save()

	out := make([]Flash, 0, len(raw))
	for _, r := range raw {
		str, ok := r.(string)
		if !ok {
			continue
		}
		kind, msg, found := strings.Cut(str, ":")
		if !found {
			kind, msg = string(FlashInfo), str
		}
		out = append(out, Flash{Kind: FlashKind(kind), Message: msg})
	}
	return out
}
