package handlers

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gin-gonic/gin"
)

const flashCookie = "sweetshop_flash"

// Flash kinds, also used as CSS classes by the dashboard
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot message shown on the next rendered page
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func setFlash(c *gin.Context, kind, message string) {
	payload, err := json.Marshal([]Flash{{Kind: kind, Message: message}})
	if err != nil {
		return
	}
	c.SetCookie(flashCookie, base64.URLEncoding.EncodeToString(payload), 60, "/", "", false, true)
}

// popFlashes returns the pending messages and clears the cookie
func popFlashes(c *gin.Context) []Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	payload, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(payload, &flashes); err != nil {
		return nil
	}
	return flashes
}
