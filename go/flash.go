package storefrontserver

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	flashCookieName = "messages"
	contextKeyFlash = "storefront.flash.pending"
)

// Notice levels mirror the CSS classes the templates use.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelError   = "error"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// addFlash queues a notice for the next page the visitor sees, usually after a redirect.
func addFlash(c *gin.Context, level, text string) {
	pending := append(pendingFlashes(c), Flash{Level: level, Text: text})
	c.Set(contextKeyFlash, pending)
	payload, err := json.Marshal(pending)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, base64.RawURLEncoding.EncodeToString(payload), 0, "/", "", false, true)
}

// takeFlashes returns the notices for this page and expires the cookie that carried them.
func takeFlashes(c *gin.Context) []Flash {
	flashes := pendingFlashes(c)
	c.Set(contextKeyFlash, []Flash(nil))
	if raw, err := c.Cookie(flashCookieName); (err == nil && raw != "") || len(flashes) > 0 {
		c.SetCookie(flashCookieName, "", -1, "/", "", false, true)
	}
	return flashes
}

// pendingFlashes prefers notices queued during this request, which already include the ones the request carried.
func pendingFlashes(c *gin.Context) []Flash {
	if value, ok := c.Get(contextKeyFlash); ok {
		if flashes, ok := value.([]Flash); ok {
			return flashes
		}
	}
	if raw, err := c.Cookie(flashCookieName); err == nil && raw != "" {
		return decodeFlashes(raw)
	}
	return nil
}

func decodeFlashes(raw string) []Flash {
	payload, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(payload, &flashes); err != nil {
		return nil
	}
	return flashes
}
