package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetPage reads the page query parameter, defaulting to 1.
func GetPage(c *gin.Context) int {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	return page
}

// GetPageSize reads the page_size query parameter, defaulting to 10.
func GetPageSize(c *gin.Context) int {
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize <= 0 {
		pageSize = 10
	}
	return pageSize
}
