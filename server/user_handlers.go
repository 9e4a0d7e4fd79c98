package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type userRegisterData struct {
	Username string `json:"username"`
	Key      string `json:"key"`
}

// handleUserRegister creates an account when the request carries the
// configured invite key. The generated access key is returned here and never
// again.
func (s *Server) handleUserRegister(w http.ResponseWriter, r *http.Request) error {
	var data userRegisterData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		return PublicError{http.StatusBadRequest, "request body is not valid json."}
	}

	if data.Key != s.cfg.InviteKey {
		return PublicError{http.StatusUnauthorized, "invite key was invalid."}
	}

	accessKey, err := randomString(AccessKeyLength)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	s.log.Debugw("registering user", "username", data.Username, "id", id)

	// Public registration can never create an admin.
	if err := s.store.CreateUser(r.Context(), id, data.Username, accessKey, false); err != nil {
		return fmt.Errorf("create user %q: %w", data.Username, err)
	}

	writeMsg(w, accessKey)
	return nil
}

// handleUserDeleteById lets an admin remove a non-admin account together
// with all of its media.
func (s *Server) handleUserDeleteById(w http.ResponseWriter, r *http.Request) error {
	self := userFromContext(r)
	if !self.IsAdmin {
		return PublicError{http.StatusUnauthorized, "you must be an admin to use this endpoint, if you are a user trying to delete your account use `/user/delete`."}
	}

	uid, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return PublicError{http.StatusBadRequest, err.Error()}
	}

	target, err := s.store.UserById(r.Context(), uid.String())
	if err != nil {
		return fmt.Errorf("look up user %s: %w", uid, err)
	}
	if target == nil {
		return PublicError{http.StatusNotFound, "user not found."}
	}
	if target.IsAdmin {
		return PublicError{http.StatusUnauthorized, "cannot delete another admin, if you need to delete an admin, do it directly from the database."}
	}

	s.log.Debugw("admin initiated a drop of a user and their media", "admin", self.Id, "target", target.Id)

	if err := s.store.DeleteUserCascade(r.Context(), target.Id); err != nil {
		return fmt.Errorf("cascade delete user %s: %w", target.Id, err)
	}

	writeMsg(w, "user deleted")
	return nil
}

// handleUserDeleteSelf removes the caller's own account and media. Resolving
// the bearer token is the only authorization needed.
func (s *Server) handleUserDeleteSelf(w http.ResponseWriter, r *http.Request) error {
	user := userFromContext(r)

	s.log.Debugw("dropping user and their media (self-imposed)", "user", user.Id)

	if err := s.store.DeleteUserCascade(r.Context(), user.Id); err != nil {
		return fmt.Errorf("cascade delete user %s: %w", user.Id, err)
	}

	writeMsg(w, "user deleted")
	return nil
}
