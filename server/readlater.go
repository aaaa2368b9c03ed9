package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/raihara3/feedspace/pkg/domain"
)

// listReadLaterHandler returns the owner's bookmarks, newest first
func (s *Server) listReadLaterHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := s.readLater.List(r.Context(), userID(r))
	if err != nil {
		renderStoreError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"read_later": entries})
}

// addReadLaterHandler bookmarks a stored item. The entry snapshots the
// item fields so the bookmark outlives retention eviction.
func (s *Server) addReadLaterHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := userID(r)

	var req struct {
		ItemID int64 `json:"item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if req.ItemID == 0 {
		renderError(w, r, fmt.Errorf("item_id is required"), http.StatusBadRequest)
		return
	}

	item, err := s.items.GetItem(ctx, uid, req.ItemID)
	if err != nil {
		renderStoreError(w, r, err)
		return
	}

	entry := &domain.ReadLaterEntry{
		UserID:      uid,
		FeedItemID:  item.ID,
		Title:       item.Title,
		Link:        item.Link,
		Description: item.Description,
		PublishedAt: item.PublishedAt,
		FeedTitle:   item.FeedTitle,
		FeedID:      item.FeedID,
	}
	if err := s.readLater.Add(ctx, entry); err != nil {
		renderStoreError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusCreated, entry)
}

// deleteReadLaterHandler removes a bookmark
func (s *Server) deleteReadLaterHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if err := s.readLater.Delete(r.Context(), userID(r), id); err != nil {
		renderStoreError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}
