package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"automotora-api/models"
	"automotora-api/services"
	"automotora-api/utils"
)

type InquiryController struct {
	db     *gorm.DB
	mailer *services.EmailService
	log    *logrus.Logger
}

func NewInquiryController(db *gorm.DB, mailer *services.EmailService, log *logrus.Logger) *InquiryController {
	return &InquiryController{db: db, mailer: mailer, log: log}
}

type CreateInquiryRequest struct {
	Name      string  `json:"nombre"`
	Email     string  `json:"email"`
	Phone     string  `json:"telefono"`
	Message   string  `json:"mensaje"`
	VehicleID *string `json:"vehiculoId"`
}

type UpdateInquiryRequest struct {
	Status *string `json:"estado"`
}

func validateInquiry(req *CreateInquiryRequest) []string {
	var errores []string

	if strings.TrimSpace(req.Name) == "" {
		errores = append(errores, "El nombre es obligatorio")
	}
	if strings.TrimSpace(req.Email) == "" {
		errores = append(errores, "El email es obligatorio")
	} else if !utils.IsValidEmail(strings.TrimSpace(req.Email)) {
		errores = append(errores, "El email no es válido")
	}
	if strings.TrimSpace(req.Phone) == "" {
		errores = append(errores, "El teléfono es obligatorio")
	}
	if strings.TrimSpace(req.Message) == "" {
		errores = append(errores, "El mensaje es obligatorio")
	} else if len(strings.TrimSpace(req.Message)) < 10 {
		errores = append(errores, "El mensaje debe tener al menos 10 caracteres")
	}

	return errores
}

// inquiryView pairs an inquiry with the shallow vehicle summary served
// in listings.
type inquiryView struct {
	models.Inquiry
	Vehicle *models.VehicleSummary `json:"vehiculo,omitempty"`
}

// ListInquiries returns inquiries newest-first, filterable by estado
// and vehiculoId. Staff only: the access gate guards GET on this path.
func (ic *InquiryController) ListInquiries(c *gin.Context) {
	query := ic.db.Preload("Vehicle")

	if estado := models.InquiryStatus(c.Query("estado")); estado.Valid() {
		query = query.Where("status = ?", estado)
	}
	if vehicleID := c.Query("vehiculoId"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}

	var inquiries []models.Inquiry
	if err := query.Order("created_at DESC").Find(&inquiries).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	views := make([]inquiryView, len(inquiries))
	for i, inq := range inquiries {
		views[i] = inquiryView{Inquiry: inq, Vehicle: inq.Vehicle.Summary()}
		views[i].Inquiry.Vehicle = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"count":     len(views),
		"consultas": views,
	})
}

func (ic *InquiryController) GetInquiry(c *gin.Context) {
	id := c.Param("id")

	var inquiry models.Inquiry
	if err := ic.db.Preload("Vehicle").First(&inquiry, "id = ?", id).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Consulta no encontrada")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"consulta": inquiry,
	})
}

// CreateInquiry is the only public mutation in the API: customers
// submit it from vehicle detail pages without logging in.
func (ic *InquiryController) CreateInquiry(c *gin.Context) {
	var req CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Datos inválidos")
		return
	}

	if errores := validateInquiry(&req); len(errores) > 0 {
		utils.SendValidationErrors(c, errores)
		return
	}

	// A dangling reference is a 404, not a validation problem.
	var vehicle *models.Vehicle
	if req.VehicleID != nil && *req.VehicleID != "" {
		vehicle = &models.Vehicle{}
		if err := ic.db.First(vehicle, "id = ?", *req.VehicleID).Error; err != nil {
			utils.SendError(c, http.StatusNotFound, "El vehículo especificado no existe")
			return
		}
	} else {
		req.VehicleID = nil
	}

	inquiry := models.Inquiry{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		Message:   strings.TrimSpace(req.Message),
		Status:    models.InquiryPending,
		VehicleID: req.VehicleID,
	}

	if err := ic.db.Create(&inquiry).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	ic.log.WithField("inquiry_id", inquiry.ID).Infof("nueva consulta recibida de %s", inquiry.Name)

	if ic.mailer.Enabled() {
		go ic.mailer.NotifyNewInquiry(&inquiry, vehicle)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"consulta": inquiryView{Inquiry: inquiry, Vehicle: vehicle.Summary()},
		"mensaje":  "Consulta enviada exitosamente. Nos pondremos en contacto pronto.",
	})
}

// UpdateInquiry transitions the status; other fields are immutable.
func (ic *InquiryController) UpdateInquiry(c *gin.Context) {
	id := c.Param("id")

	var inquiry models.Inquiry
	if err := ic.db.First(&inquiry, "id = ?", id).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Consulta no encontrada")
		return
	}

	var req UpdateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Datos inválidos")
		return
	}

	if req.Status != nil {
		estado := models.InquiryStatus(*req.Status)
		if !estado.Valid() {
			utils.SendError(c, http.StatusBadRequest,
				fmt.Sprintf("Estado inválido. Opciones: %s", strings.Join(models.ValidInquiryStatuses(), ", ")))
			return
		}
		if err := ic.db.Model(&inquiry).Update("status", estado).Error; err != nil {
			utils.SendError(c, http.StatusInternalServerError, err.Error())
			return
		}
		inquiry.Status = estado
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"consulta": inquiry,
		"mensaje":  "Consulta actualizada exitosamente",
	})
}

func (ic *InquiryController) DeleteInquiry(c *gin.Context) {
	id := c.Param("id")

	var inquiry models.Inquiry
	if err := ic.db.First(&inquiry, "id = ?", id).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Consulta no encontrada")
		return
	}

	if err := ic.db.Delete(&inquiry).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"mensaje": "Consulta eliminada exitosamente",
	})
}
