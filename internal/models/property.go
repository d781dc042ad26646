package models

import "time"

// Property types accepted by the marketplace.
const (
	TypeTerrain     = "terrain"
	TypeMaison      = "maison"
	TypeAppartement = "appartement"
	TypeStudio      = "studio"
	TypeChambre     = "chambre"
	TypeLot         = "lot"
	TypeCommercial  = "commercial"
)

// Property listing statuses.
const (
	StatusDisponible = "disponible"
	StatusReserve    = "réservé"
	StatusVendu      = "vendu"
)

var PropertyTypes = []string{
	TypeTerrain, TypeMaison, TypeAppartement, TypeStudio,
	TypeChambre, TypeLot, TypeCommercial,
}

var PropertyStatuses = []string{StatusDisponible, StatusReserve, StatusVendu}

type Property struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description"`
	PropertyType string    `json:"property_type" gorm:"index;not null"`
	Neighborhood string    `json:"neighborhood"`
	City         string    `json:"city" gorm:"index"`
	Area         *float64  `json:"area"`
	Price        int64     `json:"price"`
	Status       string    `json:"status" gorm:"index;default:disponible"`
	Images       []string  `json:"images" gorm:"serializer:json"`
	VideoURL     string    `json:"video_url"`
	Features     []string  `json:"features" gorm:"serializer:json"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	CreatedBy    *string   `json:"created_by" gorm:"type:varchar(64)"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Property) TableName() string {
	return "properties"
}

// PrimaryImage returns the image shown on listing cards. Position 0 is
// primary by convention; reordering means removing and re-adding.
func (p *Property) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ValidType reports whether t is one of the accepted property types.
func ValidType(t string) bool {
	for _, v := range PropertyTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the accepted listing statuses.
func ValidStatus(s string) bool {
	for _, v := range PropertyStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// PropertyStats summarizes the catalogue for the admin dashboard.
type PropertyStats struct {
	TotalProperties int            `json:"total_properties"`
	TotalDisponible int            `json:"total_disponible"`
	TotalReserve    int            `json:"total_reserve"`
	TotalVendu      int            `json:"total_vendu"`
	AveragePrice    float64        `json:"average_price"`
	CountByType     map[string]int `json:"count_by_type"`
}
