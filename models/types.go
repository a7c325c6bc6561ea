package models

// FuelType enumerates the accepted fuel values as stored and served.
type FuelType string

const (
	FuelNafta    FuelType = "NAFTA"
	FuelDiesel   FuelType = "DIESEL"
	FuelElectric FuelType = "ELECTRICO"
	FuelHybrid   FuelType = "HIBRIDO"
	FuelGNC      FuelType = "GNC"
)

var fuelTypes = []FuelType{FuelNafta, FuelDiesel, FuelElectric, FuelHybrid, FuelGNC}

func (f FuelType) Valid() bool {
	for _, v := range fuelTypes {
		if f == v {
			return true
		}
	}
	return false
}

// Transmission enumerates gearbox types.
type Transmission string

const (
	TransmissionManual     Transmission = "MANUAL"
	TransmissionAutomatic  Transmission = "AUTOMATICA"
	TransmissionSequential Transmission = "SECUENCIAL"
)

var transmissions = []Transmission{TransmissionManual, TransmissionAutomatic, TransmissionSequential}

func (t Transmission) Valid() bool {
	for _, v := range transmissions {
		if t == v {
			return true
		}
	}
	return false
}

// VehicleStatus tracks the sale state of a listing.
type VehicleStatus string

const (
	StatusAvailable VehicleStatus = "DISPONIBLE"
	StatusReserved  VehicleStatus = "RESERVADO"
	StatusSold      VehicleStatus = "VENDIDO"
)

var vehicleStatuses = []VehicleStatus{StatusAvailable, StatusReserved, StatusSold}

func (s VehicleStatus) Valid() bool {
	for _, v := range vehicleStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// InquiryStatus tracks how far staff got with a customer inquiry.
type InquiryStatus string

const (
	InquiryPending   InquiryStatus = "PENDIENTE"
	InquiryContacted InquiryStatus = "CONTACTADO"
	InquiryClosed    InquiryStatus = "CERRADO"
)

var inquiryStatuses = []InquiryStatus{InquiryPending, InquiryContacted, InquiryClosed}

func (s InquiryStatus) Valid() bool {
	for _, v := range inquiryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ValidFuelTypes returns the accepted values, for validation messages.
func ValidFuelTypes() []string {
	out := make([]string, len(fuelTypes))
	for i, v := range fuelTypes {
		out[i] = string(v)
	}
	return out
}

func ValidTransmissions() []string {
	out := make([]string, len(transmissions))
	for i, v := range transmissions {
		out[i] = string(v)
	}
	return out
}

func ValidVehicleStatuses() []string {
	out := make([]string, len(vehicleStatuses))
	for i, v := range vehicleStatuses {
		out[i] = string(v)
	}
	return out
}

func ValidInquiryStatuses() []string {
	out := make([]string, len(inquiryStatuses))
	for i, v := range inquiryStatuses {
		out[i] = string(v)
	}
	return out
}
