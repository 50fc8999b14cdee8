package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/masarhr/masar-backend-go/internal/handler/http/response"
)

// HRAdminOnly guards mutations of company-wide payroll settings such as GOSI
// rate configurations.
func HRAdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || (role != "hr_admin" && role != "admin") {
			response.Forbidden(w, "HR admin privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
