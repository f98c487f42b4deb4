package version

import (
	"runtime"
	"time"
)

// Set at build time with -ldflags "-X github.com/MrSnakeDoc/staffdash/internal/version.Version=..."
var (
	Version   = "dev"                           // ex: v0.3.0
	Commit    = "none"                          // ex: 9f2c1ab
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2026-10-16T09:12:00Z
	GoVersion = runtime.Version()
)
