package handlers

import (
	"errors"
	"net/http"

	"github.com/ecohealth/sentinel/internal/chatbot"
	"github.com/ecohealth/sentinel/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// ChatbotHandler serves the domain chat endpoints.
type ChatbotHandler struct {
	svc       *chatbot.Service
	perMinute int
}

func NewChatbotHandler(svc *chatbot.Service, perMinute int) *ChatbotHandler {
	return &ChatbotHandler{svc: svc, perMinute: perMinute}
}

// Register routes under /chatbot
func (h *ChatbotHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/chatbot")
	limit := middleware.ChatRateLimitMiddleware(h.perMinute)
	g.POST("", limit, h.Chat)
	g.POST("/:domain", limit, h.Chat)
	g.GET("/history", h.History)
}

// Chat answers {domain, message, location?, sessionId?} with {reply, sessionId}.
// Validation failures use the flat {"error": ...} shape chat clients expect.
func (h *ChatbotHandler) Chat(c *gin.Context) {
	var req chatbot.Request
	// a malformed body leaves req empty and fails validation below
	_ = c.ShouldBindJSON(&req)
	if d := c.Param("domain"); d != "" {
		req.Domain = d
	}
	reply, err := h.svc.Chat(c.Request.Context(), req)
	if err != nil {
		if isChatValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

func isChatValidation(err error) bool {
	return errors.Is(err, chatbot.ErrInvalidDomain) ||
		errors.Is(err, chatbot.ErrMessageRequired) ||
		errors.Is(err, chatbot.ErrMessageTooLong)
}

// History returns a stored conversation oldest first.
func (h *ChatbotHandler) History(c *gin.Context) {
	limit, valid := intQuery(c, "limit", 0)
	if !valid {
		return
	}
	msgs, err := h.svc.History(c.Request.Context(), c.Query("sessionId"), c.Query("domain"), int64(limit))
	if err != nil {
		if errors.Is(err, chatbot.ErrInvalidDomain) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "messages": msgs, "count": len(msgs)})
}
