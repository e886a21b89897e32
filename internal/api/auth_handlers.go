package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readingtracker/readingtracker-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	register(s, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "Log in",
		Description: "Checks credentials and sets the session cookie. Limited to 10 attempts per client per 15 minutes.",
		Tags:        []string{"Auth"},
	}, s.handleLogin)

	register(s, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/auth/logout",
		Summary:     "Log out",
		Description: "Clears the session cookie. The token itself stays valid until it expires.",
		Tags:        []string{"Auth"},
	}, s.handleLogout)

	register(s, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/auth/me",
		Summary:     "Current user",
		Description: "Returns the identity carried by the session cookie",
		Tags:        []string{"Auth"},
		Security:    sessionSecurity,
	}, s.handleMe)
}

// === DTOs ===

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	_        struct{} `json:"-" additionalProperties:"true"`
	Email    string   `json:"email" required:"false" doc:"Account email"`
	Password string   `json:"password" required:"false" doc:"Account password"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body     LoginRequest
	clientIP string
}

// Resolve captures the client address used for login throttling: the socket
// peer, or the forwarded client when the server trusts a proxy.
func (in *LoginInput) Resolve(ctx huma.Context) []error {
	in.clientIP = hostOnly(ctx.RemoteAddr())
	return nil
}

// UserResponse contains the public fields of the account.
type UserResponse struct {
	ID    string `json:"id" doc:"User ID"`
	Email string `json:"email" doc:"User email"`
}

// UserEnvelope wraps a user in API responses.
type UserEnvelope struct {
	User UserResponse `json:"user"`
}

// LoginOutput sets the session cookie and returns the user.
type LoginOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      UserEnvelope
}

// LogoutOutput clears the session cookie.
type LogoutOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      SuccessResponse
}

// UserOutput wraps the user response for Huma.
type UserOutput struct {
	Body UserEnvelope
}

// === Handlers ===

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	result, err := s.services.Auth.Login(ctx, input.clientIP, service.LoginRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		SetCookie: s.sessionCookie(result.Token, s.services.Auth.SessionTTL()),
		Body: UserEnvelope{User: UserResponse{
			ID:    result.User.ID,
			Email: result.User.Email,
		}},
	}, nil
}

func (s *Server) handleLogout(_ context.Context, _ *struct{}) (*LogoutOutput, error) {
	return &LogoutOutput{
		SetCookie: s.sessionCookie("", 0),
		Body:      SuccessResponse{Success: true},
	}, nil
}

func (s *Server) handleMe(ctx context.Context, _ *struct{}) (*UserOutput, error) {
	claims, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	return &UserOutput{
		Body: UserEnvelope{User: UserResponse{ID: claims.UserID, Email: claims.Email}},
	}, nil
}

// sessionCookie builds the session cookie. A zero ttl produces a cookie that
// deletes the existing one.
func (s *Server) sessionCookie(token string, ttl time.Duration) http.Cookie {
	cookie := http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(ttl / time.Second),
	}
	if ttl <= 0 {
		cookie.MaxAge = -1
	}
	return cookie
}
