package controllers

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/neuralarc-ai/helium-inviter/middleware"
	"github.com/neuralarc-ai/helium-inviter/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
)

// LogResponse is the log endpoints' envelope.
type LogResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // same open-origin policy as the REST surface
	},
	HandshakeTimeout: 10 * time.Second,
}

func initLogFile(logPath string) error {
	dir := filepath.Dir(logPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		file, err := os.Create(logPath)
		if err != nil {
			return err
		}
		file.Close()
	}
	return nil
}

// GetLogs godoc
// @Summary      Fetch application logs
// @Description  Returns the last N lines of the log file
// @Tags         system
// @Produce      json
// @Param        lines  query    int     false  "Number of lines (default 100)"  minimum(1) maximum(1000)
// @Success      200    {object} LogResponse
// @Failure      500    {object} LogResponse
// @Security     Bearer
// @Router       /admin/logs [get]
func GetLogs(c *gin.Context) {
	lines := 100
	if lineParam := c.Query("lines"); lineParam != "" {
		if parsedLines, err := strconv.Atoi(lineParam); err == nil && parsedLines > 0 && parsedLines <= 1000 {
			lines = parsedLines
		}
	}

	logPath := filepath.Join("logs", "app.log")

	if err := initLogFile(logPath); err != nil {
		c.JSON(http.StatusInternalServerError, LogResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to initialize log file",
			Error:   err.Error(),
		})
		return
	}

	file, err := os.Open(logPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, LogResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to open log file",
			Error:   err.Error(),
		})
		return
	}
	defer file.Close()

	var logLines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		logLines = append(logLines, scanner.Text())
		if len(logLines) > lines {
			logLines = logLines[1:]
		}
	}

	if err := scanner.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, LogResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to read log file",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, LogResponse{
		Code:    http.StatusOK,
		Message: "Logs fetched successfully",
		Data:    logLines,
	})
}

// WatchLogs godoc
// @Summary      Stream application logs
// @Description  Streams new log lines over a WebSocket connection
// @Tags         system
// @Security     Bearer
// @Router       /admin/logs/watch [get]
func WatchLogs(c *gin.Context) {
	utils.LogInfo(fmt.Sprintf("WebSocket connection attempt from %s", c.ClientIP()))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.LogError("Failed to upgrade WebSocket connection", err)
		return
	}

	// Authenticate via query token; browsers cannot set headers on WS dials.
	token := c.Query("token")
	if token == "" {
		conn.WriteJSON(map[string]interface{}{
			"type":    "auth_error",
			"message": "missing token",
		})
		conn.Close()
		return
	}

	parsedToken, err := jwt.Parse(token, middleware.HMACKeyFunc)
	if err != nil || !parsedToken.Valid {
		conn.WriteJSON(map[string]interface{}{
			"type":    "auth_error",
			"message": "invalid token",
		})
		conn.Close()
		return
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		conn.WriteJSON(map[string]interface{}{
			"type":    "auth_error",
			"message": "invalid token claims",
		})
		conn.Close()
		return
	}

	role, _ := claims["role"].(string)
	if role != "admin" {
		conn.WriteJSON(map[string]interface{}{
			"type":    "auth_error",
			"message": "admin access required",
		})
		conn.Close()
		return
	}

	conn.WriteJSON(map[string]interface{}{
		"type":    "auth_success",
		"message": "authenticated",
	})

	utils.AddClient(conn)
	utils.LogInfo(fmt.Sprintf("WebSocket connection established from %s", c.ClientIP()))

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	defer func() {
		utils.RemoveClient(conn)
		conn.Close()
		utils.LogInfo(fmt.Sprintf("WebSocket connection closed from %s", c.ClientIP()))
	}()

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				utils.LogError("WebSocket read error", err)
			}
			break
		}
	}
}
