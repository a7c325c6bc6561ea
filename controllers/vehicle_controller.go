package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"automotora-api/middleware"
	"automotora-api/models"
	"automotora-api/utils"
)

type VehicleController struct {
	db *gorm.DB
}

func NewVehicleController(db *gorm.DB) *VehicleController {
	return &VehicleController{db: db}
}

type VehicleImageInput struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Position int    `json:"orden"`
}

type VehicleFeatureInput struct {
	Name string `json:"nombre"`
}

type CreateVehicleRequest struct {
	Brand        string                `json:"marca"`
	Model        string                `json:"modelo"`
	Year         int                   `json:"anio"`
	Price        float64               `json:"precio"`
	Mileage      int                   `json:"kilometraje"`
	Fuel         string                `json:"combustible"`
	Transmission string                `json:"transmision"`
	Color        string                `json:"color"`
	Doors        int                   `json:"puertas"`
	Engine       *string               `json:"motor"`
	Description  *string               `json:"descripcion"`
	Featured     bool                  `json:"destacado"`
	Images       []VehicleImageInput   `json:"imagenes"`
	Features     []VehicleFeatureInput `json:"caracteristicas"`
}

// UpdateVehicleRequest applies partial semantics: only non-nil fields
// are validated and written.
type UpdateVehicleRequest struct {
	Brand        *string  `json:"marca"`
	Model        *string  `json:"modelo"`
	Year         *int     `json:"anio"`
	Price        *float64 `json:"precio"`
	Mileage      *int     `json:"kilometraje"`
	Fuel         *string  `json:"combustible"`
	Transmission *string  `json:"transmision"`
	Color        *string  `json:"color"`
	Doors        *int     `json:"puertas"`
	Engine       *string  `json:"motor"`
	Description  *string  `json:"descripcion"`
	Status       *string  `json:"estado"`
	Featured     *bool    `json:"destacado"`
}

func maxVehicleYear() int {
	return time.Now().Year() + 1
}

func validateCreateVehicle(req *CreateVehicleRequest) []string {
	var errores []string

	if strings.TrimSpace(req.Brand) == "" {
		errores = append(errores, "La marca es obligatoria")
	}
	if strings.TrimSpace(req.Model) == "" {
		errores = append(errores, "El modelo es obligatorio")
	}
	if strings.TrimSpace(req.Color) == "" {
		errores = append(errores, "El color es obligatorio")
	}
	if req.Year < 1900 || req.Year > maxVehicleYear() {
		errores = append(errores, "Año inválido")
	}
	if req.Price <= 0 {
		errores = append(errores, "Precio inválido")
	}
	if req.Mileage < 0 {
		errores = append(errores, "Kilometraje inválido")
	}
	if req.Doors <= 0 {
		errores = append(errores, "Cantidad de puertas inválida")
	}
	if !models.FuelType(req.Fuel).Valid() {
		errores = append(errores, fmt.Sprintf("Tipo de combustible inválido. Opciones: %s", strings.Join(models.ValidFuelTypes(), ", ")))
	}
	if !models.Transmission(req.Transmission).Valid() {
		errores = append(errores, fmt.Sprintf("Tipo de transmisión inválida. Opciones: %s", strings.Join(models.ValidTransmissions(), ", ")))
	}

	return errores
}

func validateUpdateVehicle(req *UpdateVehicleRequest) []string {
	var errores []string

	if req.Brand != nil && strings.TrimSpace(*req.Brand) == "" {
		errores = append(errores, "La marca no puede estar vacía")
	}
	if req.Model != nil && strings.TrimSpace(*req.Model) == "" {
		errores = append(errores, "El modelo no puede estar vacío")
	}
	if req.Year != nil && (*req.Year < 1900 || *req.Year > maxVehicleYear()) {
		errores = append(errores, "Año inválido")
	}
	if req.Price != nil && *req.Price <= 0 {
		errores = append(errores, "El precio debe ser mayor a 0")
	}
	if req.Mileage != nil && *req.Mileage < 0 {
		errores = append(errores, "El kilometraje no puede ser negativo")
	}
	if req.Doors != nil && *req.Doors <= 0 {
		errores = append(errores, "La cantidad de puertas debe ser mayor a 0")
	}
	if req.Fuel != nil && !models.FuelType(*req.Fuel).Valid() {
		errores = append(errores, fmt.Sprintf("Combustible inválido. Opciones: %s", strings.Join(models.ValidFuelTypes(), ", ")))
	}
	if req.Transmission != nil && !models.Transmission(*req.Transmission).Valid() {
		errores = append(errores, fmt.Sprintf("Transmisión inválida. Opciones: %s", strings.Join(models.ValidTransmissions(), ", ")))
	}
	if req.Status != nil && !models.VehicleStatus(*req.Status).Valid() {
		errores = append(errores, fmt.Sprintf("Estado inválido. Opciones: %s", strings.Join(models.ValidVehicleStatuses(), ", ")))
	}

	return errores
}

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("orden ASC")
}

// ListVehicles returns listings newest-first, filterable by estado and
// a case-insensitive marca substring. Anonymous callers without an
// estado filter only see available vehicles.
func (vc *VehicleController) ListVehicles(c *gin.Context) {
	query := vc.db.Preload("Images", orderedImages).Preload("Features")

	estado := models.VehicleStatus(c.Query("estado"))
	if estado == "" && !middleware.IsAuthenticated(c) {
		estado = models.StatusAvailable
	}
	if estado.Valid() {
		query = query.Where("status = ?", estado)
	}

	if marca := c.Query("marca"); marca != "" {
		query = query.Where("LOWER(brand) LIKE ?", "%"+strings.ToLower(marca)+"%")
	}

	var vehicles []models.Vehicle
	if err := query.Order("created_at DESC").Find(&vehicles).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	for i := range vehicles {
		vehicles[i].Normalize()
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"count":     len(vehicles),
		"vehiculos": vehicles,
	})
}

func (vc *VehicleController) GetVehicle(c *gin.Context) {
	id := c.Param("id")

	var vehicle models.Vehicle
	err := vc.db.Preload("Images", orderedImages).
		Preload("Features").
		Preload("Inquiries").
		First(&vehicle, "id = ?", id).Error
	if err != nil {
		utils.SendError(c, http.StatusNotFound, "Vehículo no encontrado")
		return
	}

	vehicle.Normalize()

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"vehiculo": vehicle,
	})
}

func (vc *VehicleController) CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Datos inválidos")
		return
	}

	if errores := validateCreateVehicle(&req); len(errores) > 0 {
		utils.SendValidationErrors(c, errores)
		return
	}

	vehicle := models.Vehicle{
		ID:           uuid.New().String(),
		Brand:        strings.TrimSpace(req.Brand),
		Model:        strings.TrimSpace(req.Model),
		Year:         req.Year,
		Price:        req.Price,
		Mileage:      req.Mileage,
		Fuel:         models.FuelType(req.Fuel),
		Transmission: models.Transmission(req.Transmission),
		Color:        strings.TrimSpace(req.Color),
		Doors:        req.Doors,
		Engine:       trimOptional(req.Engine),
		Description:  trimOptional(req.Description),
		Status:       models.StatusAvailable,
		Featured:     req.Featured,
	}

	// Nested records share the vehicle's create; image order follows the
	// input sequence.
	for i, img := range req.Images {
		vehicle.Images = append(vehicle.Images, models.Image{
			ID:       uuid.New().String(),
			URL:      img.URL,
			PublicID: img.PublicID,
			Position: i,
		})
	}
	for _, f := range req.Features {
		vehicle.Features = append(vehicle.Features, models.Feature{
			ID:   uuid.New().String(),
			Name: f.Name,
		})
	}

	if err := vc.db.Create(&vehicle).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	vehicle.Normalize()

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"vehiculo": vehicle,
	})
}

func (vc *VehicleController) UpdateVehicle(c *gin.Context) {
	id := c.Param("id")

	var vehicle models.Vehicle
	if err := vc.db.First(&vehicle, "id = ?", id).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Vehículo no encontrado")
		return
	}

	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Datos inválidos")
		return
	}

	if errores := validateUpdateVehicle(&req); len(errores) > 0 {
		utils.SendValidationErrors(c, errores)
		return
	}

	updates := map[string]interface{}{}
	if req.Brand != nil {
		updates["brand"] = strings.TrimSpace(*req.Brand)
	}
	if req.Model != nil {
		updates["model"] = strings.TrimSpace(*req.Model)
	}
	if req.Color != nil {
		updates["color"] = strings.TrimSpace(*req.Color)
	}
	if req.Engine != nil {
		updates["engine"] = strings.TrimSpace(*req.Engine)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Mileage != nil {
		updates["mileage"] = *req.Mileage
	}
	if req.Doors != nil {
		updates["doors"] = *req.Doors
	}
	if req.Fuel != nil {
		updates["fuel"] = *req.Fuel
	}
	if req.Transmission != nil {
		updates["transmission"] = *req.Transmission
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}

	if len(updates) > 0 {
		if err := vc.db.Model(&vehicle).Updates(updates).Error; err != nil {
			utils.SendError(c, http.StatusInternalServerError, err.Error())
			return
		}
	}

	var updated models.Vehicle
	if err := vc.db.Preload("Images", orderedImages).Preload("Features").First(&updated, "id = ?", id).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	updated.Normalize()

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"vehiculo": updated,
		"mensaje":  "Vehículo actualizado exitosamente",
	})
}

// DeleteVehicle removes a listing and its owned images and features.
// Inquiries hold a weak reference that must keep resolving, so a
// vehicle with inquiries cannot be deleted.
func (vc *VehicleController) DeleteVehicle(c *gin.Context) {
	id := c.Param("id")

	var vehicle models.Vehicle
	if err := vc.db.First(&vehicle, "id = ?", id).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Vehículo no encontrado")
		return
	}

	var inquiryCount int64
	if err := vc.db.Model(&models.Inquiry{}).Where("vehicle_id = ?", id).Count(&inquiryCount).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if inquiryCount > 0 {
		utils.SendError(c, http.StatusConflict, "No se puede eliminar el vehículo porque tiene consultas asociadas")
		return
	}

	err := vc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vehicle_id = ?", id).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vehicle_id = ?", id).Delete(&models.Feature{}).Error; err != nil {
			return err
		}
		return tx.Delete(&vehicle).Error
	})
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"mensaje": "Vehículo eliminado exitosamente",
		"vehiculoEliminado": gin.H{
			"id":     vehicle.ID,
			"marca":  vehicle.Brand,
			"modelo": vehicle.Model,
		},
	})
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
