package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// listKeywordsHandler returns the owner's keywords in registration order
func (s *Server) listKeywordsHandler(w http.ResponseWriter, r *http.Request) {
	keywords, err := s.keywords.List(r.Context(), userID(r))
	if err != nil {
		renderStoreError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"keywords": keywords})
}

// addKeywordHandler registers a keyword for the owner
func (s *Server) addKeywordHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Keyword string `json:"keyword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	kw, err := s.keywords.Add(r.Context(), userID(r), req.Keyword)
	if err != nil {
		renderStoreError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusCreated, kw)
}

// deleteKeywordHandler removes an owner's keyword
func (s *Server) deleteKeywordHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if err := s.keywords.Delete(r.Context(), userID(r), id); err != nil {
		renderStoreError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}
