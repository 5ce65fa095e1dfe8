package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	catalogerrors "ratehub/contexts/content-catalog/catalog-service/domain/errors"
	cataloghttp "ratehub/contexts/content-catalog/catalog-service/transport/http"
	authzerrors "ratehub/contexts/identity-access/authorization-service/domain/errors"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.ListCategoriesHandler(r.Context())
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeCatalogError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	var req cataloghttp.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.CreateCategoryHandler(r.Context(), requester, req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeCatalogError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	if err := s.catalog.Handler.DeleteCategoryHandler(r.Context(), requester, r.PathValue("slug")); err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.ListGenresHandler(r.Context())
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateGenre(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeCatalogError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	var req cataloghttp.CreateGenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.CreateGenreHandler(r.Context(), requester, req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDeleteGenre(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeCatalogError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	if err := s.catalog.Handler.DeleteGenreHandler(r.Context(), requester, r.PathValue("slug")); err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTitles(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := cataloghttp.TitleListQuery{
		Category: params.Get("category"),
		Genre:    params.Get("genre"),
		Name:     params.Get("name"),
	}
	if raw := params.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			writeCatalogError(w, http.StatusBadRequest, "invalid_year", "year must be an integer")
			return
		}
		query.Year = &year
	}
	resp, err := s.catalog.Handler.ListTitlesHandler(r.Context(), query)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTitle(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.GetTitleHandler(r.Context(), r.PathValue("title_id"))
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTitle(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeCatalogError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	var req cataloghttp.CreateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.CreateTitleHandler(r.Context(), requester, req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handlePatchTitle(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeCatalogError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	var req cataloghttp.PatchTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.PatchTitleHandler(r.Context(), requester, r.PathValue("title_id"), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteTitle(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeCatalogError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	if err := s.catalog.Handler.DeleteTitleHandler(r.Context(), requester, r.PathValue("title_id")); err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeCatalogDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authzerrors.ErrAuthenticationRequired):
		writeCatalogError(w, http.StatusUnauthorized, "authentication_required", err.Error())
	case errors.Is(err, authzerrors.ErrForbidden):
		writeCatalogError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, catalogerrors.ErrCategoryNotFound):
		writeCatalogError(w, http.StatusNotFound, "category_not_found", err.Error())
	case errors.Is(err, catalogerrors.ErrGenreNotFound):
		writeCatalogError(w, http.StatusNotFound, "genre_not_found", err.Error())
	case errors.Is(err, catalogerrors.ErrTitleNotFound):
		writeCatalogError(w, http.StatusNotFound, "title_not_found", err.Error())
	case errors.Is(err, catalogerrors.ErrSlugTaken):
		writeCatalogError(w, http.StatusConflict, "slug_taken", err.Error())
	case errors.Is(err, catalogerrors.ErrInvalidName),
		errors.Is(err, catalogerrors.ErrInvalidSlug),
		errors.Is(err, catalogerrors.ErrInvalidYear):
		writeCatalogError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeCatalogError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCatalogError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, cataloghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
