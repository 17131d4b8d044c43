package auth

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/gophcontacts/internal/client/client"
)

// Middleware returns an API client middleware that signs requests with the
// session token and logs the session out when the API answers 401. The
// response is still handed back so the caller sees the failure.
func (s *Session) Middleware() client.Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return client.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			token := s.Token()
			if token != "" {
				req = req.Clone(req.Context())
				req.Header.Set("Authorization", "Bearer "+token)
			}

			resp, err := next.RoundTrip(req)
			if err != nil {
				return resp, err
			}

			// A 401 for a token that has since been replaced says nothing
			// about the current session.
			if resp.StatusCode == http.StatusUnauthorized && token != "" && token == s.Token() {
				s.HandleUnauthorized(context.WithoutCancel(req.Context()))
			}
			return resp, nil
		})
	}
}
