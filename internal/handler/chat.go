package handler

import (
	"net/http"

	"github.com/lingomate/lingomate-go/internal/middleware"
)

// UserTokenCreator mints chat tokens the client SDK uses to connect to the
// external chat provider.
type UserTokenCreator interface {
	CreateUserToken(userID string) (string, error)
}

// ChatHandler hands out provider chat tokens for authenticated accounts.
type ChatHandler struct {
	tokens UserTokenCreator
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(tokens UserTokenCreator) *ChatHandler {
	return &ChatHandler{tokens: tokens}
}

// HandleToken handles GET /api/chat/token requests.
func (h *ChatHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	token, err := h.tokens.CreateUserToken(userID.Hex())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
