package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/speaktime/speaktime-api/internal/httputil"
	"github.com/speaktime/speaktime-api/internal/model"
	"github.com/speaktime/speaktime-api/internal/repository"
)

type contextKey struct{}

var userContextKey = contextKey{}

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth is the authentication guard applied to every protected route. It
// never mutates state: it resolves the bearer token to a user and attaches
// that user to the request context, or short-circuits the request.
type Auth struct {
	tokens   TokenVerifier
	userRepo repository.UserRepository
	logger   *zerolog.Logger
}

func NewAuth(tokens TokenVerifier, userRepo repository.UserRepository, logger *zerolog.Logger) *Auth {
	return &Auth{tokens: tokens, userRepo: userRepo, logger: logger}
}

// RequireAuth validates the Authorization header and loads the token's
// subject. A token whose subject no longer exists yields 404, not 401: the
// token was valid but the identity it references is gone.
func (m *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if header == "" || len(parts) != 2 || parts[0] != "Bearer" {
			httputil.RespondError(w, "token missing", http.StatusUnauthorized)
			return
		}

		userID, err := m.tokens.Verify(parts[1])
		if err != nil {
			// The reason (malformed, bad signature, expired) is logged but
			// collapsed into one unauthenticated outcome for the client.
			m.logger.Debug().Err(err).Msg("token verification failed")
			httputil.RespondError(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		// A subject that cannot name a stored document is answered the same
		// way as a deleted one.
		if _, err := bson.ObjectIDFromHex(userID); err != nil {
			httputil.RespondError(w, "user not found", http.StatusNotFound)
			return
		}

		user, err := m.userRepo.GetUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				httputil.RespondError(w, "user not found", http.StatusNotFound)
				return
			}

			m.logger.Error().Err(err).Msg("failed to load authenticated user")
			httputil.RespondError(w, "something went wrong", http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user attached by RequireAuth.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	return user, ok
}
