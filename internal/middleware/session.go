package middleware

import (
	"net/http"

	"github.com/ideaprism/mafia-growth-academy/internal/handlers"
	"github.com/ideaprism/mafia-growth-academy/internal/services"
)

// SessionMiddleware resolves the single-slot session user from the
// record store on every request and attaches it to the request context.
// There is no token: the slot itself is the session, matching the
// single-device design.
type SessionMiddleware struct {
	userService services.UserServiceInterface
}

func NewSessionMiddleware(userService services.UserServiceInterface) *SessionMiddleware {
	return &SessionMiddleware{userService: userService}
}

func (m *SessionMiddleware) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := m.userService.Current(r.Context()); user != nil {
			r = r.WithContext(handlers.WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}
