// Package handlers chứa fiber handler cho REST API của marketplace
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/muslewski/eventizer-sub001/utils"
	"github.com/techmaster-vietnam/goerrorkit"
)

// parseBody đọc JSON body vào req rồi validate theo tag `validate`
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return goerrorkit.NewValidationError("Dữ liệu không hợp lệ", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return utils.ValidateStruct(req)
}

// pageParams đọc ?page=&page_size= và đổi sang offset/limit
func pageParams(c *fiber.Ctx) (page, pageSize, offset int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize = c.QueryInt("page_size", 20)
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize, (page - 1) * pageSize
}

// listResponse là response chuẩn cho danh sách có phân trang
func listResponse(c *fiber.Ctx, data interface{}, total int64, page, pageSize int) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"pagination": fiber.Map{
			"page":      page,
			"page_size": pageSize,
			"total":     total,
		},
	})
}
