package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"tariff-engine/internal/api/models"
	"tariff-engine/internal/tariff"

	"github.com/gin-gonic/gin"
)

// TariffHandler serves the example tariff documents shipped with the repo.
type TariffHandler struct {
	tariffDir string
}

// NewTariffHandler creates a new tariff handler
func NewTariffHandler() *TariffHandler {
	dir := os.Getenv("TARIFF_DIR")
	if dir == "" {
		wd, err := os.Getwd()
		if err == nil {
			dir = filepath.Join(wd, "examples", "tariffs")
		} else {
			dir = "./examples/tariffs"
		}
	}
	if absDir, err := filepath.Abs(dir); err == nil {
		dir = absDir
	}
	return &TariffHandler{tariffDir: dir}
}

// ListTariffs handles GET /api/v1/tariffs
func (h *TariffHandler) ListTariffs(c *gin.Context) {
	tariffs := []models.TariffInfo{}

	entries, err := os.ReadDir(h.tariffDir)
	if err != nil {
		log.Printf("TariffHandler: failed to read tariff directory %s: %v", h.tariffDir, err)
		c.JSON(http.StatusOK, gin.H{"tariffs": tariffs})
		return
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(h.tariffDir, e.Name())
		t, err := tariff.Load(path)
		if err != nil {
			log.Printf("TariffHandler: skipping %s: %v", e.Name(), err)
			continue
		}
		tariffs = append(tariffs, models.TariffInfo{
			ID:      strings.TrimSuffix(e.Name(), ext),
			Name:    t.Name,
			Code:    t.Code,
			Service: string(t.Service),
			File:    e.Name(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"tariffs": tariffs})
}
