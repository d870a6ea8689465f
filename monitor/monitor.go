package monitor

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

// RegisterMonitorPage mounts a token-protected status endpoint used by the
// operations team to check the process without shell access.
func RegisterMonitorPage(router *gin.Engine) {
	router.GET("/monitor", func(c *gin.Context) {
		token := os.Getenv("MONITOR_TOKEN")
		if token == "" || c.Query("token") != token {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		hostname, _ := os.Hostname()

		c.JSON(http.StatusOK, gin.H{
			"status":         "up",
			"hostname":       hostname,
			"started_at":     startedAt.Format(time.RFC3339),
			"uptime_seconds": int64(time.Since(startedAt).Seconds()),
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
			"heap_alloc_mb":  mem.HeapAlloc / 1024 / 1024,
			"num_gc":         mem.NumGC,
		})
	})

	router.GET("/logs", func(c *gin.Context) {
		token := os.Getenv("MONITOR_TOKEN")
		if token == "" || c.Query("token") != token {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		logData, err := os.ReadFile("logs/reserve-api.log")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to read log"})
			return
		}

		c.Data(http.StatusOK, "text/plain; charset=utf-8", logData)
	})
}
