package web

import (
	"net/http"

	"gitlab.com/yelinaung/money-manager/internal/apperror"
	"gitlab.com/yelinaung/money-manager/internal/auth"
	"gitlab.com/yelinaung/money-manager/internal/logger"
)

const msgRegistered = "Registration successful! Please login."

type loginView struct {
	Username      string
	RegisterError string
	RegisterName  string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if _, err := s.sessions.Parse(cookie.Value); err == nil {
			http.Redirect(w, r, "/expenses", http.StatusFound)
			return
		}
	}

	data := pageData{Title: "Login", Content: loginView{}}
	if r.URL.Query().Get("registered") == "1" {
		data.Success = msgRegistered
	}
	s.render(w, http.StatusOK, "login", data)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := s.accounts.Login(r.Context(), username, password)
	if err != nil {
		if apperror.IsAuthentication(err) || apperror.IsValidation(err) {
			appErr, _ := apperror.As(err)
			s.render(w, appErr.StatusCode(), "login", pageData{
				Title:   "Login",
				Error:   appErr.Message,
				Content: loginView{Username: username},
			})
			return
		}
		s.renderError(w, r, nil, err)
		return
	}

	token, err := s.sessions.Issue(auth.Session{UserID: user.ID, Username: user.Username})
	if err != nil {
		s.renderError(w, r, nil, apperror.NewInternalError("failed to issue session", err))
		return
	}
	s.setSessionCookie(w, token)

	logger.Log.Info().
		Str("user_id", logger.HashUserID(user.ID)).
		Msg("User logged in")

	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")

	_, err := s.accounts.Register(r.Context(),
		username,
		r.PostFormValue("password"),
		r.PostFormValue("confirm_password"),
	)
	if err != nil {
		if apperror.IsValidation(err) {
			appErr, _ := apperror.As(err)
			s.render(w, appErr.StatusCode(), "login", pageData{
				Title:   "Login",
				Content: loginView{RegisterError: appErr.Message, RegisterName: username},
			})
			return
		}
		s.renderError(w, r, nil, err)
		return
	}

	http.Redirect(w, r, "/login?registered=1", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
