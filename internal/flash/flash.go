// Package flash carries one-shot notification messages across a redirect
// using a short-lived cookie, so a page rendered after a POST can show the
// outcome of the action that preceded it.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const cookieName = "bd_flash"

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
)

type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Set queues a message for the next rendered page.
func Set(c *gin.Context, kind Kind, text string) {
	raw, err := json.Marshal(Message{Kind: kind, Text: text})
	if err != nil {
		return
	}
	encoded := base64.URLEncoding.EncodeToString(raw)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, encoded, 60, "/", "", false, true)
}

func Success(c *gin.Context, text string) { Set(c, KindSuccess, text) }
func Error(c *gin.Context, text string)   { Set(c, KindError, text) }

// Pop returns the pending message, if any, and clears it so it shows once.
func Pop(c *gin.Context) *Message {
	encoded, err := c.Cookie(cookieName)
	if err != nil || encoded == "" {
		return nil
	}
	c.SetCookie(cookieName, "", -1, "/", "", false, true)

	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil
	}
	return &msg
}
