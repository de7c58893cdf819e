package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/jobboard-api/internal/application/dto"
)

// pageFromQuery lee page y per_page; los topes los aplica dto.PageRequest.DefaultPage.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Page: c.QueryInt("page", 1), PerPage: c.QueryInt("per_page", dto.DefaultPerPage)}
}

// optionalBool "" → nil; acepta 1/0/true/false.
func optionalBool(raw string) (*bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, false
	}
	return &b, true
}
