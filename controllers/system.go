package controllers

import (
	"net/http"
	"time"

	"github.com/neuralarc-ai/helium-inviter/config"
	"github.com/neuralarc-ai/helium-inviter/models"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

var startTime = time.Now()

type SystemStatsResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SystemStats are server-computed row counts, cheaper than the full
// dashboard scan for a quick overview.
type SystemStats struct {
	TotalCodes      int64 `json:"total_codes"`
	UsedCodes       int64 `json:"used_codes"`
	WaitlistEntries int64 `json:"waitlist_entries"`
}

type SystemStatus struct {
	CPUUsage      float64        `json:"cpuUsage"`
	MemoryTotal   uint64         `json:"memoryTotal"`
	MemoryUsed    uint64         `json:"memoryUsed"`
	MemoryUsage   float64        `json:"memoryUsage"`
	DiskTotal     uint64         `json:"diskTotal"`
	DiskUsed      uint64         `json:"diskUsed"`
	DiskUsage     float64        `json:"diskUsage"`
	NetworkStatus NetworkMetrics `json:"networkStatus"`
	Uptime        float64        `json:"uptime"`
}

type NetworkMetrics struct {
	RxBytes     uint64 `json:"rxBytes"`
	TxBytes     uint64 `json:"txBytes"`
	Connections int    `json:"connections"`
}

// HealthCheck godoc
// @Summary      Health check
// @Description  Liveness probe with process uptime
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "OK",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(startTime).Seconds(),
		"environment": config.GetConfig().Environment,
	})
}

// GetSystemStats godoc
// @Summary      Row-count statistics
// @Description  Totals for invite codes and waitlist entries, counted in the database
// @Tags         system
// @Produce      json
// @Security     Bearer
// @Success      200 {object} SystemStatsResponse
// @Router       /admin/stats [get]
func GetSystemStats(c *gin.Context) {
	var stats SystemStats

	models.DB.Model(&models.InviteCode{}).Count(&stats.TotalCodes)
	models.DB.Model(&models.InviteCode{}).Where("is_used = ?", true).Count(&stats.UsedCodes)
	models.DB.Model(&models.WaitlistEntry{}).Count(&stats.WaitlistEntries)

	c.JSON(http.StatusOK, SystemStatsResponse{
		Code:    http.StatusOK,
		Message: "System statistics fetched successfully",
		Data:    stats,
	})
}

// GetSystemStatus godoc
// @Summary      System status
// @Description  Live CPU, memory, disk and network metrics of the host
// @Tags         system
// @Produce      json
// @Security     Bearer
// @Success      200 {object} SystemStatsResponse
// @Router       /admin/system/status [get]
func GetSystemStatus(c *gin.Context) {
	status := SystemStatus{}

	if uptime, err := host.Uptime(); err == nil {
		status.Uptime = float64(uptime)
	}

	cpuPercent, err := cpu.Percent(time.Second, false)
	if err == nil && len(cpuPercent) > 0 {
		status.CPUUsage = cpuPercent[0]
	}

	if memInfo, err := mem.VirtualMemory(); err == nil {
		status.MemoryTotal = memInfo.Total
		status.MemoryUsed = memInfo.Used
		status.MemoryUsage = memInfo.UsedPercent
	}

	if diskInfo, err := disk.Usage("/"); err == nil {
		status.DiskTotal = diskInfo.Total
		status.DiskUsed = diskInfo.Used
		status.DiskUsage = diskInfo.UsedPercent
	}

	networkMetrics := NetworkMetrics{}
	if netStats, err := net.IOCounters(false); err == nil && len(netStats) > 0 {
		networkMetrics.RxBytes = netStats[0].BytesRecv
		networkMetrics.TxBytes = netStats[0].BytesSent
	}

	if connections, err := net.Connections("all"); err == nil {
		networkMetrics.Connections = len(connections)
	}

	status.NetworkStatus = networkMetrics

	c.JSON(http.StatusOK, SystemStatsResponse{
		Code:    http.StatusOK,
		Message: "System status fetched successfully",
		Data:    status,
	})
}
