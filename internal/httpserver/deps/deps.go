package deps

import (
	"time"

	"github.com/MrSnakeDoc/staffdash/internal/bookmarks"
	"github.com/MrSnakeDoc/staffdash/internal/httpserver/ws"
	"github.com/MrSnakeDoc/staffdash/internal/index"
	"github.com/MrSnakeDoc/staffdash/internal/logger"
	"github.com/MrSnakeDoc/staffdash/internal/search"
	"github.com/MrSnakeDoc/staffdash/internal/sources"
	redisstore "github.com/MrSnakeDoc/staffdash/internal/store/redis"
	"github.com/MrSnakeDoc/staffdash/internal/store/sqlstore"
)

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time  // for testing, defaults to time.Now
	AllowedHosts    []string          // Host headers allowed to access the ops endpoints
	AllowedCIDRS    []string          // IPs allowed to access readyz/infra/reload/metrics
	TrustProxy      bool              // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RateLimitBurst  int               // bookmark mutations burst per client IP
	RateLimitPerMin int               // bookmark mutations refill per client IP
	Roster          *index.Roster     // Loaded employees
	Bookmarks       *bookmarks.Store  // Process-wide bookmark set
	Source          sources.Source    // Upstream employee records (detail fallback, bookmark resolution)
	Sessions        *search.Sessions  // Per-session filter engines
	Hub             *ws.Hub           // Bookmark event stream (nil disables /api/bookmarks/ws)
	Snapshots       *redisstore.Store // Roster snapshots, nil when redis is not configured
	SQL             *sqlstore.DB      // nil unless the sqlite/postgres backend is selected
	ReloadTrigger   chan struct{}     // Channel to trigger a manual roster reload
}

// Now returns d.TimeNow() or time.Now when unset.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
