package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"fitChallengeAPI/internal/session"
)

type contextKey string

const UserIDKey contextKey = "userID"

// IdentityResolver finds or creates the user attached to a session.
type IdentityResolver interface {
	EnsureUser(ctx context.Context, s *session.Session) (string, error)
}

// Identity loads the browser session, makes sure it carries a user id and
// saves it back before the handler runs, which also extends the cookie
// lifetime. The session and user id are placed in the request context.
func Identity(sessions *session.Manager, resolver IdentityResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sess, err := sessions.Load(ctx, r)
			if err != nil {
				logger.Error("load session", zap.Error(err))
				respondWithError(w, http.StatusInternalServerError, "error connecting to session store")
				return
			}

			userID, err := resolver.EnsureUser(ctx, sess)
			if err != nil {
				logger.Error("ensure user", zap.Error(err))
				respondWithError(w, http.StatusInternalServerError, "error connecting to db")
				return
			}

			if err := sessions.Save(ctx, w, sess); err != nil {
				logger.Error("save session", zap.Error(err))
				respondWithError(w, http.StatusInternalServerError, "error connecting to session store")
				return
			}

			ctx = context.WithValue(ctx, UserIDKey, userID)
			ctx = session.WithSession(ctx, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the user id placed by Identity.
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
