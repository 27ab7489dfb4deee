package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/rentwheels/rentwheels-server/internal/auth"
	"github.com/rentwheels/rentwheels-server/internal/http/response"
)

// handleIssueToken signs the posted identity payload into a session
// token and sets it as an httpOnly cookie. The payload is taken on
// faith: whoever the frontend says is logged in gets a token for that
// identity. Only the presence of an email is enforced.
func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var identity map[string]any
	if err := json.UnmarshalRead(r.Body, &identity); err != nil {
		response.BadRequest(w, "invalid request body", s.logger.Logger)
		return
	}

	token, err := s.tokenService.Issue(identity)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	auth.SetSessionCookie(w, token, s.tokenService.TokenDuration(), s.config.IsProduction())

	s.logger.Info("session token issued", "email", identity["email"])
	response.Success(w, map[string]bool{"success": true}, s.logger.Logger)
}

// handleLogout clears the session cookie. There is no server-side
// session state to revoke; the token simply ages out.
func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	auth.ClearSessionCookie(w, s.config.IsProduction())
	response.Message(w, "logged out", s.logger.Logger)
}
