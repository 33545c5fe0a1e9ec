package handlers

import (
	"net/http"

	"cna-backend/internal/catalog"

	"github.com/gin-gonic/gin"
)

type TemplatesHandler struct {
	catalog *catalog.Catalog
}

func NewTemplatesHandler(cat *catalog.Catalog) *TemplatesHandler {
	return &TemplatesHandler{catalog: cat}
}

func (h *TemplatesHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":   h.catalog.Version(),
		"templates": h.catalog.Entries(),
	})
}
