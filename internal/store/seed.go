package store

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"mboaimmo/server/internal/models"
)

var seedTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func floatPtr(v float64) *float64 { return &v }
func strPtr(s string) *string     { return &s }

// SeedUsers returns the fixture accounts present in every fresh
// installation. Password for every seed account is "password".
func SeedUsers() []models.User {
	return []models.User{
		{
			ID:       "user-admin",
			Username: "admin",
			Email:    "admin@mboaimmo.cm",
			// bcrypt("password")
			PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMye8fOsiTWZqYtkxvXkKm8BMzjT7t/vIdq",
			FirstName:    "Estelle",
			LastName:     "Ngono",
			Phone:        "+237670000001",
			Address:      "Bastos, Yaoundé",
			IsActive:     true,
			CreatedAt:    seedTime,
			UpdatedAt:    seedTime,
		},
		{
			ID:           "user-demo",
			Username:     "jkamga",
			Email:        "jean.kamga@example.cm",
			PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMye8fOsiTWZqYtkxvXkKm8BMzjT7t/vIdq",
			FirstName:    "Jean",
			LastName:     "Kamga",
			Phone:        "+237690000002",
			Address:      "Makepe, Douala",
			IsActive:     true,
			CreatedAt:    seedTime,
			UpdatedAt:    seedTime,
		},
	}
}

// SeedAdmins returns the back-office role records for the fixture accounts.
func SeedAdmins() []models.Admin {
	return []models.Admin{
		{ID: "admin-1", UserID: "user-admin", Role: models.RoleAdmin, CreatedAt: seedTime},
	}
}

// SeedProperties returns the fixture catalogue shown before any listing
// has been created.
func SeedProperties() []models.Property {
	return []models.Property{
		{
			ID:           "prop-001",
			Title:        "Villa moderne avec piscine",
			Description:  "Villa de standing avec 4 chambres, piscine et grand jardin.",
			PropertyType: models.TypeMaison,
			Neighborhood: "Bonapriso",
			City:         "Douala",
			Area:         floatPtr(450),
			Price:        185000000,
			Status:       models.StatusDisponible,
			Images:       []string{"https://images.mboaimmo.cm/prop-001-1.jpg", "https://images.mboaimmo.cm/prop-001-2.jpg"},
			Features:     []string{"piscine", "garage", "jardin", "groupe électrogène"},
			Latitude:     floatPtr(4.0215),
			Longitude:    floatPtr(9.6986),
			CreatedBy:    strPtr("user-admin"),
			CreatedAt:    seedTime,
			UpdatedAt:    seedTime,
		},
		{
			ID:           "prop-002",
			Title:        "Appartement 3 pièces à Bastos",
			Description:  "Appartement lumineux au 2e étage, proche des ambassades.",
			PropertyType: models.TypeAppartement,
			Neighborhood: "Bastos",
			City:         "Yaoundé",
			Area:         floatPtr(120),
			Price:        45000000,
			Status:       models.StatusDisponible,
			Images:       []string{"https://images.mboaimmo.cm/prop-002-1.jpg"},
			Features:     []string{"balcon", "parking", "forage"},
			Latitude:     floatPtr(3.8936),
			Longitude:    floatPtr(11.5121),
			CreatedBy:    strPtr("user-admin"),
			CreatedAt:    seedTime.Add(24 * time.Hour),
			UpdatedAt:    seedTime.Add(24 * time.Hour),
		},
		{
			ID:           "prop-003",
			Title:        "Terrain titré 500 m² à Odza",
			Description:  "Terrain plat avec titre foncier, accès bitumé.",
			PropertyType: models.TypeTerrain,
			Neighborhood: "Odza",
			City:         "Yaoundé",
			Area:         floatPtr(500),
			Price:        25000000,
			Status:       models.StatusDisponible,
			Images:       []string{"https://images.mboaimmo.cm/prop-003-1.jpg"},
			Features:     []string{"titre foncier", "accès bitumé"},
			CreatedBy:    strPtr("user-admin"),
			CreatedAt:    seedTime.Add(48 * time.Hour),
			UpdatedAt:    seedTime.Add(48 * time.Hour),
		},
		{
			ID:           "prop-004",
			Title:        "Studio meublé à Bonamoussadi",
			Description:  "Studio moderne entièrement meublé, eau et électricité incluses.",
			PropertyType: models.TypeStudio,
			Neighborhood: "Bonamoussadi",
			City:         "Douala",
			Area:         floatPtr(35),
			Price:        15000000,
			Status:       models.StatusReserve,
			Images:       []string{"https://images.mboaimmo.cm/prop-004-1.jpg"},
			Features:     []string{"meublé", "climatisation"},
			CreatedBy:    strPtr("user-admin"),
			CreatedAt:    seedTime.Add(72 * time.Hour),
			UpdatedAt:    seedTime.Add(72 * time.Hour),
		},
		{
			ID:           "prop-005",
			Title:        "Immeuble commercial à Akwa",
			Description:  "Immeuble R+3 en plein centre commercial de Douala.",
			PropertyType: models.TypeCommercial,
			Neighborhood: "Akwa",
			City:         "Douala",
			Area:         floatPtr(800),
			Price:        350000000,
			Status:       models.StatusVendu,
			Images:       []string{"https://images.mboaimmo.cm/prop-005-1.jpg"},
			Features:     []string{"ascenseur", "parking sous-sol"},
			Latitude:     floatPtr(4.0469),
			Longitude:    floatPtr(9.6921),
			CreatedBy:    strPtr("user-admin"),
			CreatedAt:    seedTime.Add(96 * time.Hour),
			UpdatedAt:    seedTime.Add(96 * time.Hour),
		},
	}
}

// SeedTransactions returns the display-only fixtures behind the
// back-office payments screen. There is no live write path for this
// surface yet.
func SeedTransactions() []models.Transaction {
	return []models.Transaction{
		{
			ID:            "tx-001",
			UserID:        "user-demo",
			PropertyID:    "prop-005",
			TotalAmount:   350000000,
			PaidAmount:    350000000,
			RemainAmount:  0,
			Status:        models.TxCompleted,
			PaymentMethod: "Virement bancaire",
			CreatedAt:     seedTime.Add(120 * time.Hour),
			UpdatedAt:     seedTime.Add(240 * time.Hour),
		},
		{
			ID:            "tx-002",
			UserID:        "user-demo",
			PropertyID:    "prop-004",
			TotalAmount:   15000000,
			PaidAmount:    5000000,
			RemainAmount:  10000000,
			Status:        models.TxPartial,
			PaymentMethod: "Mobile Money",
			CreatedAt:     seedTime.Add(150 * time.Hour),
			UpdatedAt:     seedTime.Add(150 * time.Hour),
		},
		{
			ID:            "tx-003",
			UserID:        "user-demo",
			PropertyID:    "prop-002",
			TotalAmount:   45000000,
			PaidAmount:    0,
			RemainAmount:  45000000,
			Status:        models.TxPending,
			PaymentMethod: "Espèces",
			CreatedAt:     seedTime.Add(200 * time.Hour),
			UpdatedAt:     seedTime.Add(200 * time.Hour),
		},
	}
}

// EnsureSeed loads the fixture rows into a store that has no properties
// yet. Safe to run twice; existing rows are left alone.
func EnsureSeed(ctx context.Context, st Store, log *logrus.Logger) error {
	props, err := st.ListProperties(ctx)
	if err != nil {
		return err
	}
	if len(props) > 0 {
		log.Info("Store already contains data, skipping seed")
		return nil
	}

	for _, u := range SeedUsers() {
		u := u
		if err := st.CreateUser(ctx, &u); err != nil && !errors.Is(err, ErrDuplicate) {
			return err
		}
	}
	for _, a := range SeedAdmins() {
		a := a
		if err := st.CreateAdmin(ctx, &a); err != nil {
			return err
		}
	}
	for _, p := range SeedProperties() {
		p := p
		if err := st.CreateProperty(ctx, &p); err != nil {
			return err
		}
	}

	log.WithFields(logrus.Fields{
		"users":      len(SeedUsers()),
		"properties": len(SeedProperties()),
	}).Info("Fixture data loaded")
	return nil
}
