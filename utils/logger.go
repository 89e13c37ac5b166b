package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var (
	logFile    *os.File
	logger     *log.Logger
	mu         sync.Mutex
	clients    = make(map[*websocket.Conn]bool)
	clientsMux sync.Mutex
)

// InitLogger sets up the application logger writing to both stdout and
// logs/app.log, and starts the rotation check.
func InitLogger() error {
	mu.Lock()
	defer mu.Unlock()

	if logger != nil {
		return nil
	}

	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, "app.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	logFile = file
	mw := io.MultiWriter(os.Stdout, file)
	logger = log.New(mw, "", 0)

	go checkLogRotation()

	return nil
}

// LogError records an error with a timestamp and broadcasts it to any
// connected log watchers.
func LogError(message string, err error) {
	if logger == nil {
		InitLogger()
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	errMsg := fmt.Sprintf("[%s] [ERROR] %s", timestamp, message)
	if err != nil {
		errMsg += fmt.Sprintf(": %v", err)
	}
	logger.Println(errMsg)
	BroadcastLog(errMsg)
}

// LogInfo records an informational message.
func LogInfo(message string) {
	if logger == nil {
		InitLogger()
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	logMessage := fmt.Sprintf("[%s] [INFO] %s", timestamp, message)
	logger.Println(logMessage)
	BroadcastLog(logMessage)
}

// LogWarn records a non-fatal warning.
func LogWarn(message string) {
	if logger == nil {
		InitLogger()
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	logMessage := fmt.Sprintf("[%s] [WARN] %s", timestamp, message)
	logger.Println(logMessage)
	BroadcastLog(logMessage)
}

func checkLogRotation() {
	for {
		time.Sleep(time.Hour)
		if needRotation() {
			rotateLog()
		}
	}
}

// needRotation reports whether the log file exceeds 10MB.
func needRotation() bool {
	if logFile == nil {
		return false
	}

	info, err := logFile.Stat()
	if err != nil {
		return false
	}

	return info.Size() > 10*1024*1024
}

func rotateLog() {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return
	}

	logFile.Close()

	oldPath := filepath.Join("logs", "app.log")
	newPath := filepath.Join("logs", fmt.Sprintf("app.%s.log",
		time.Now().Format("20060102150405")))

	os.Rename(oldPath, newPath)

	file, err := os.OpenFile(oldPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logFile = nil
		logger = nil
		return
	}
	logFile = file
	logger = log.New(io.MultiWriter(os.Stdout, file), "", 0)
}

// BroadcastLog sends a log line to every connected WebSocket client.
func BroadcastLog(message string) {
	clientsMux.Lock()
	defer clientsMux.Unlock()

	for client := range clients {
		err := client.WriteMessage(websocket.TextMessage, []byte(message))
		if err != nil {
			client.Close()
			delete(clients, client)
		}
	}
}

// AddClient registers a WebSocket client for log broadcasts.
func AddClient(conn *websocket.Conn) {
	clientsMux.Lock()
	clients[conn] = true
	clientsMux.Unlock()
}

// RemoveClient unregisters a WebSocket client.
func RemoveClient(conn *websocket.Conn) {
	clientsMux.Lock()
	delete(clients, conn)
	clientsMux.Unlock()
}
