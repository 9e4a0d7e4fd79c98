package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/h2non/filetype"

	"github.com/liondadev/quick-media-host/types"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing; larger
// bodies spill to temp files but are still fully buffered before storage.
const maxUploadMemory = 32 << 20

// handleMediaUpload is called when an authenticated user uploads a file.
func (s *Server) handleMediaUpload(w http.ResponseWriter, r *http.Request) error {
	user := userFromContext(r)

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return PublicError{http.StatusBadRequest, "request body is not valid multipart form data."}
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return PublicError{http.StatusBadRequest, "unable to find multipart field `file`."}
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return PublicError{http.StatusBadRequest, "error getting the bytes from field `file`"}
	}

	// The client-declared content type is ignored on purpose; the stored
	// type comes from the payload bytes alone.
	kind, err := filetype.Match(content)
	if err != nil || kind == filetype.Unknown {
		return PublicError{http.StatusBadRequest, "could not determine mimetype."}
	}

	name, err := s.freeFileName(r.Context(), kind.Extension)
	if err != nil {
		return err
	}

	media := &types.Media{
		FileName: name,
		Content:  content,
		MimeType: kind.MIME.Value,
		UserId:   user.Id,
	}
	if err := s.store.CreateMedia(r.Context(), media); err != nil {
		return fmt.Errorf("store media %s: %w", name, err)
	}

	s.log.Debugw("media created", "user", user.Id, "file", name, "bytes", len(content))

	writeMsg(w, name)
	return nil
}

// handleMediaView serves stored media publicly by file name.
func (s *Server) handleMediaView(w http.ResponseWriter, r *http.Request) error {
	name := chi.URLParam(r, "name")

	media, err := s.store.MediaByName(r.Context(), name)
	if err != nil {
		return fmt.Errorf("look up media %s: %w", name, err)
	}
	if media == nil {
		return PublicError{http.StatusNotFound, "media not found."}
	}

	s.log.Debugw("media viewed", "file", media.FileName)

	w.Header().Set("Content-Type", media.MimeType)
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(media.Content)

	return err
}

// handleThumbnailView renders a png thumbnail of jpeg/png media. Thumbnails
// are computed per request since content lives in the database, not on disk.
func (s *Server) handleThumbnailView(w http.ResponseWriter, r *http.Request) error {
	name := chi.URLParam(r, "name")

	media, err := s.store.MediaByName(r.Context(), name)
	if err != nil {
		return fmt.Errorf("look up media %s: %w", name, err)
	}
	if media == nil {
		return PublicError{http.StatusNotFound, "media not found."}
	}

	if !slices.Contains(AllowedThumbnailMimeTypes, media.MimeType) {
		return PublicError{http.StatusBadRequest, "thumbnails can only be created for jpeg and png media."}
	}

	thumb, err := MakeThumbnail(media.MimeType, bytes.NewReader(media.Content))
	if err != nil {
		return fmt.Errorf("make thumbnail for %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, err = io.Copy(w, thumb)

	return err
}

// handleMediaDelete removes media by name if the caller owns it or is an
// admin.
func (s *Server) handleMediaDelete(w http.ResponseWriter, r *http.Request) error {
	user := userFromContext(r)
	name := chi.URLParam(r, "name")

	media, err := s.store.MediaByName(r.Context(), name)
	if err != nil {
		return fmt.Errorf("look up media %s: %w", name, err)
	}
	if media == nil {
		return PublicError{http.StatusNotFound, "media not found."}
	}

	if media.UserId != user.Id && !user.IsAdmin {
		return PublicError{http.StatusUnauthorized, "the uploader id does not match your id and you are not an admin."}
	}

	if err := s.store.DeleteMediaByName(r.Context(), name); err != nil {
		return fmt.Errorf("delete media %s: %w", name, err)
	}

	s.log.Debugw("media deleted", "file", name, "user", user.Id)

	writeMsg(w, "media deleted.")
	return nil
}
