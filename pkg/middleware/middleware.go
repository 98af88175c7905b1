// Package middleware holds HTTP middlewares shared by the service routers.
package middleware

import "net/http"

type Middleware func(next http.Handler) http.Handler
