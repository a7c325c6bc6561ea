package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"automotora-api/models"
	"automotora-api/services"
	"automotora-api/utils"
)

// maxUploadBatch bounds how many images one request may push to the
// hosting provider.
const maxUploadBatch = 10

type ImageController struct {
	db   *gorm.DB
	host services.ImageHost
	log  *logrus.Logger
}

func NewImageController(db *gorm.DB, host services.ImageHost, log *logrus.Logger) *ImageController {
	return &ImageController{db: db, host: host, log: log}
}

type UploadRequest struct {
	Images []string `json:"images"`
}

type AssociateImagesRequest struct {
	Images []VehicleImageInput `json:"imagenes"`
}

// Upload pushes a batch of inline-encoded images to the hosting
// provider. The fan-out is all-or-nothing: the first failure aborts the
// request, and provider-side uploads that already finished are not
// rolled back.
func (imc *ImageController) Upload(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Datos inválidos")
		return
	}

	if len(req.Images) == 0 {
		utils.SendError(c, http.StatusBadRequest, "No se proporcionaron imágenes")
		return
	}
	if len(req.Images) > maxUploadBatch {
		utils.SendError(c, http.StatusBadRequest, "Máximo 10 imágenes por vez")
		return
	}
	for _, img := range req.Images {
		if !strings.HasPrefix(img, "data:image/") {
			utils.SendError(c, http.StatusBadRequest, "Formato de imagen inválido")
			return
		}
	}

	uploaded := make([]*services.UploadedImage, len(req.Images))
	g, ctx := errgroup.WithContext(c.Request.Context())
	for i, img := range req.Images {
		i, img := i, img
		g.Go(func() error {
			result, err := imc.host.Upload(ctx, img)
			if err != nil {
				return err
			}
			uploaded[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		imc.log.Errorf("image upload failed: %v", err)
		utils.SendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"images":  uploaded,
		"count":   len(uploaded),
	})
}

// Associate attaches already-hosted images to a vehicle, preserving the
// caller-supplied display order.
func (imc *ImageController) Associate(c *gin.Context) {
	vehicleID := c.Param("id")

	var vehicle models.Vehicle
	if err := imc.db.First(&vehicle, "id = ?", vehicleID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Vehículo no encontrado")
		return
	}

	var req AssociateImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Images) == 0 {
		utils.SendError(c, http.StatusBadRequest, "Datos inválidos")
		return
	}

	images := make([]models.Image, len(req.Images))
	for i, img := range req.Images {
		images[i] = models.Image{
			ID:        uuid.New().String(),
			URL:       img.URL,
			PublicID:  img.PublicID,
			Position:  img.Position,
			VehicleID: vehicleID,
		}
	}

	if err := imc.db.Create(&images).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"imagenes": images,
		"count":    len(images),
	})
}

// Remove deletes one image from a vehicle. The local row always goes;
// the provider-side asset is deleted best-effort using the stored
// public ID, falling back to parsing the URL for rows that predate it.
func (imc *ImageController) Remove(c *gin.Context) {
	vehicleID := c.Param("id")
	imageID := c.Param("imagenId")

	var vehicle models.Vehicle
	if err := imc.db.Preload("Images").First(&vehicle, "id = ?", vehicleID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Vehículo no encontrado")
		return
	}

	var image models.Image
	if err := imc.db.First(&image, "id = ?", imageID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Imagen no encontrada")
		return
	}

	if image.VehicleID != vehicleID {
		utils.SendError(c, http.StatusBadRequest, "La imagen no pertenece a este vehículo")
		return
	}

	// A listing must keep at least one customer-facing photo.
	if len(vehicle.Images) == 1 {
		utils.SendError(c, http.StatusConflict, "No se puede eliminar la última imagen del vehículo")
		return
	}

	publicID := image.PublicID
	if publicID == "" {
		publicID = services.PublicIDFromURL(image.URL)
	}
	if publicID == "" {
		imc.log.WithField("image_id", image.ID).Warn("could not determine provider public id, skipping remote delete")
	} else if err := imc.host.Delete(c.Request.Context(), publicID); err != nil {
		// Local and remote state may diverge here; the row is removed anyway.
		imc.log.WithField("public_id", publicID).Warnf("provider delete failed: %v", err)
	}

	if err := imc.db.Delete(&image).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"mensaje":           "Imagen eliminada exitosamente",
		"imagenesRestantes": len(vehicle.Images) - 1,
	})
}
