package version

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
)

// Version information, overridable with -ldflags "-X".
var (
	// Version is the current version of the application
	Version    = "0.1.0"
	GoVersion  = runtime.Version()
	ServerCode = "MF_DASHBOARD_2024JUN_0.1.0"
)

// GetInfoResponse holds all version information
type GetInfoResponse struct {
	Version      string `json:"version"`
	GoVersion    string `json:"go_version"`
	ServerCode   string `json:"server_code"`
	ServerEnv    string `json:"server_env"`
	DatabaseName string `json:"database_name"`
}

type environment interface {
	GetDatabaseName() string
}

// GetInfo returns version information for the given environment
func GetInfo(appEnv string, env environment) GetInfoResponse {
	return GetInfoResponse{
		Version:      Version,
		GoVersion:    GoVersion,
		ServerCode:   ServerCode,
		ServerEnv:    appEnv,
		DatabaseName: env.GetDatabaseName(),
	}
}

// Handler serves GET /api/version
func Handler(appEnv string, env environment) gin.HandlerFunc {
	info := GetInfo(appEnv, env)
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, info)
	}
}
