package lib

import (
	"net/http"
)

// GetCookieValue returns the value of the named cookie on the request.
func GetCookieValue(name string, r *http.Request) (string, error) {
	cookie, err := r.Cookie(name)
	if err != nil {
		return "", WrapError(KindUnauthorized, "missing session cookie", err)
	}
	if cookie.Value == "" {
		return "", NewError(KindUnauthorized, "empty session cookie")
	}
	return cookie.Value, nil
}
