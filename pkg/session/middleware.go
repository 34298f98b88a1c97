package session

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const maxIdLength = 64

// Middleware propagates the X-Session-Id header into the request context.
// Requests without one get a fresh id, echoed back in the response header.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(Header))
		if id == "" {
			id = uuid.NewString()
			log.Debugf("issued new session: %s", id)
		} else if len(id) > maxIdLength {
			http.Error(w, "session id too long", http.StatusBadRequest)
			return
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithId(r.Context(), id)))
	})
}
