package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/samber/lo"

	"github.com/raihara3/feedspace/pkg/domain"
)

// listItemsHandler returns the owner's items across all feeds, newest
// published first, each annotated with the owner's matching keywords
func (s *Server) listItemsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := userID(r)

	items, err := s.items.ListUserItems(ctx, uid)
	if err != nil {
		renderStoreError(w, r, err)
		return
	}

	keywords, err := s.keywords.List(ctx, uid)
	if err != nil {
		renderStoreError(w, r, err)
		return
	}

	annotated := annotateItems(items, keywords)
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"items": annotated})
}

// annotateItems decorates items with keywords found in their title or
// description, case-insensitive substring match
func annotateItems(items []*domain.Item, keywords []*domain.Keyword) []domain.AnnotatedItem {
	result := make([]domain.AnnotatedItem, 0, len(items))
	for _, it := range items {
		haystack := strings.ToLower(it.Title + " " + it.Description)
		matched := lo.FilterMap(keywords, func(k *domain.Keyword, _ int) (string, bool) {
			return k.Keyword, strings.Contains(haystack, strings.ToLower(k.Keyword))
		})
		result = append(result, domain.AnnotatedItem{Item: *it, MatchedKeywords: matched})
	}
	return result
}

// markReadHandler sets or clears an item's read flag
func (s *Server) markReadHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	var req struct {
		IsRead bool `json:"is_read"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	if err := s.items.SetReadStatus(r.Context(), userID(r), id, req.IsRead); err != nil {
		renderStoreError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"id": id, "is_read": req.IsRead})
}
