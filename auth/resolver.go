package auth

import (
	"net/http"
	"os"
	"strings"
)

// User is the authenticated caller of a chat request.
type User struct {
	ID string
}

// SessionResolver resolves the caller of a request to an authenticated user,
// or nil when the request carries no valid session.
type SessionResolver interface {
	Resolve(r *http.Request) *User
}

// Token_Resolver authenticates requests against a single shared bearer token.
// Browser clients send "Authorization: Bearer <token>"; websocket clients may
// pass the token as a "token" query parameter instead, since the browser
// WebSocket API cannot set headers.
type Token_Resolver struct {
	Token string
}

// NewTokenResolverFromEnv reads the shared token from CHAT_AUTH_TOKEN.
func NewTokenResolverFromEnv() *Token_Resolver {
	return &Token_Resolver{Token: os.Getenv("CHAT_AUTH_TOKEN")}
}

func (t *Token_Resolver) Resolve(r *http.Request) *User {
	// No configured token means authentication cannot succeed. Failing closed
	// here keeps an unconfigured deployment from serving anonymous traffic.
	if t.Token == "" {
		return nil
	}

	presented := ""
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		presented = strings.TrimPrefix(header, "Bearer ")
	} else if param := r.URL.Query().Get("token"); param != "" {
		presented = param
	}

	if presented != t.Token {
		return nil
	}
	return &User{ID: "token-user"}
}
