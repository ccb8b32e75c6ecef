// README: Chat, session and health handlers backed by the assistant.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/service"
)

type ChatHandler struct {
	assistant *service.Assistant
	version   string
}

func NewChatHandler(assistant *service.Assistant, version string) *ChatHandler {
	return &ChatHandler{assistant: assistant, version: version}
}

type chatReq struct {
	SessionID string `json:"session_id" binding:"required"`
	UserText  string `json:"user_text" binding:"required"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request: session_id and user_text are required")
		return
	}
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.UserText = strings.TrimSpace(req.UserText)
	if !isValidID(req.SessionID) {
		writeError(c, http.StatusBadRequest, "invalid session_id")
		return
	}
	if req.UserText == "" {
		writeError(c, http.StatusBadRequest, "missing user_text")
		return
	}

	writeJSON(c, http.StatusOK, h.assistant.Chat(c.Request.Context(), req.SessionID, req.UserText))
}

func (h *ChatHandler) GetSession(c *gin.Context) {
	snap, err := h.assistant.Session(c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, snap)
}

func (h *ChatHandler) ResetSession(c *gin.Context) {
	id := c.Param("id")
	if err := h.assistant.ResetSession(id); err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"session_id": id, "status": "reset"})
}

func (h *ChatHandler) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if err := h.assistant.DeleteSession(id); err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"session_id": id, "status": "deleted"})
}

// Root handles GET /.
func (h *ChatHandler) Root(c *gin.Context) {
	health := h.assistant.Health()
	writeJSON(c, http.StatusOK, gin.H{
		"status":          "running",
		"service":         "wayfarer",
		"version":         h.version,
		"active_sessions": health.ActiveSessions,
		"llm_enabled":     health.LLMEnabled,
	})
}

func (h *ChatHandler) Health(c *gin.Context) {
	health := h.assistant.Health()
	writeJSON(c, http.StatusOK, gin.H{
		"status":          "ok",
		"llm_enabled":     health.LLMEnabled,
		"llm_provider":    health.Provider,
		"active_sessions": health.ActiveSessions,
	})
}
