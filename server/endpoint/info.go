package endpoint

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// ServiceInfo is the payload returned by the info endpoint.
type ServiceInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
	Uptime    string `json:"uptime"`
}

// Info returns a handler reporting static service metadata and uptime.
func Info(serviceName, version string) gin.HandlerFunc {
	started := time.Now()
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, ServiceInfo{
			Service:   serviceName,
			Version:   version,
			GoVersion: runtime.Version(),
			Uptime:    time.Since(started).Round(time.Second).String(),
		})
	}
}
