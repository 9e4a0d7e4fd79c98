package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/liondadev/quick-media-host/types"
)

const AuthenticatedUserContextKey = "qmh::authenticated_user"

// requireUser resolves the bearer access key to its user and stores the user
// in the request context. Requests without a valid key never reach the
// wrapped handler. The same message covers missing users and malformed keys
// so the endpoint can't be used to enumerate accounts.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return s.handler(func(w http.ResponseWriter, r *http.Request) error {
		token := bearerToken(r)
		if token == "" {
			return PublicError{http.StatusUnauthorized, "missing bearer token."}
		}

		user, err := s.store.UserByAccessKey(r.Context(), token)
		if err != nil {
			return fmt.Errorf("resolve access key: %w", err)
		}
		if user == nil {
			return PublicError{http.StatusUnauthorized, "invalid access key."}
		}

		ctx := context.WithValue(r.Context(), AuthenticatedUserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))

		return nil
	})
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "

	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, prefix) {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(h, prefix))
}

// userFromContext returns the user placed in the context by requireUser.
func userFromContext(r *http.Request) *types.User {
	user, ok := r.Context().Value(AuthenticatedUserContextKey).(*types.User)
	if !ok {
		panic("handler requires authentication but the requireUser middleware wasn't applied")
	}

	return user
}
