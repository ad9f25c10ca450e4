package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lingomate/lingomate-go/internal/crypto"
)

type contextKey string

const userIDKey contextKey = "userID"

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "jwt"

// SessionAuth returns middleware that validates the session cookie and puts
// the account ID into the request context.
func SessionAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized - no token provided")
				return
			}

			subject, err := crypto.VerifySessionToken(cookie.Value, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized - invalid token")
				return
			}

			userID, err := primitive.ObjectIDFromHex(subject)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized - invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated account ID from the request
// context.
func UserIDFromContext(ctx context.Context) (primitive.ObjectID, bool) {
	id, ok := ctx.Value(userIDKey).(primitive.ObjectID)
	return id, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
