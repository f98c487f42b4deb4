package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/staffdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/staffdash/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/staffdash/internal/httpserver/mw"
	"github.com/MrSnakeDoc/staffdash/internal/httpserver/ws"
)

func init() {
	Register(registerBookmarks)
	RegisterStream(registerBookmarkStream)
}

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Get("/api/bookmarks", handlers.Bookmarks(d))

	limited := r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateLimitBurst,
		RefillPerIPPerMin: d.RateLimitPerMin,
		MaxEntries:        10000,
		TrustProxy:        d.TrustProxy,
	}))
	limited.Put("/api/bookmarks/{id}", handlers.AddBookmark(d))
	limited.Delete("/api/bookmarks/{id}", handlers.RemoveBookmark(d))
	limited.Post("/api/bookmarks/{id}/toggle", handlers.ToggleBookmark(d))
}

func registerBookmarkStream(r chi.Router, d deps.Deps) {
	if d.Hub == nil {
		return
	}
	r.Get("/api/bookmarks/ws", ws.ServeWS(d.Hub))
}
