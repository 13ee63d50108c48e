package storage

import "breezemart-backend/models"

// DevEmail is the fixed identity behind /api/auth/dev-login.
const DevEmail = "dev@example.com"

func seedApprovedEmails() []models.ApprovedEmail {
	return []models.ApprovedEmail{
		{Email: "admin@example.com", Role: models.RoleAdmin},
		{Email: "rider@example.com", Role: models.RoleRider},
		{Email: "customer@example.com", Role: models.RoleCustomer},
	}
}

func seedProducts() []models.Product {
	return []models.Product{
		{
			Name:          "Premium Tower Fan",
			Description:   "High-performance tower fan with oscillation and remote control.",
			Category:      models.CategoryFan,
			BasePrice:     14999,
			Image:         "https://images.unsplash.com/photo-1551498641-f5c6fe9d4afa?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60",
			AverageRating: 4,
			ReviewCount:   42,
			Colors:        []string{"White", "Black", "Silver"},
			Sizes:         []string{"Standard", "Compact", "Large"},
		},
		{
			Name:          "Eco Smart AC",
			Description:   "Energy-efficient air conditioner with smart temperature control.",
			Category:      models.CategoryAC,
			BasePrice:     54999,
			Image:         "https://images.unsplash.com/photo-1588854337115-1c67d9247e4d?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60",
			AverageRating: 5,
			ReviewCount:   118,
			Colors:        []string{"White", "Silver"},
			Sizes:         []string{"8,000", "10,000", "12,000"},
		},
		{
			Name:          "Ceiling Fan with Light",
			Description:   "Modern ceiling fan with integrated LED light and wireless remote.",
			Category:      models.CategoryFan,
			BasePrice:     19999,
			Image:         "https://images.unsplash.com/photo-1631083734151-b3112976d253?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60",
			AverageRating: 4,
			ReviewCount:   87,
			Colors:        []string{"Brushed Nickel", "Oil-Rubbed Bronze", "Matte White"},
			Sizes:         []string{"42 inch", "52 inch", "60 inch"},
		},
		{
			Name:          "Portable AC Unit",
			Description:   "Move from room to room with this powerful portable air conditioner.",
			Category:      models.CategoryAC,
			BasePrice:     32999,
			Image:         "https://images.unsplash.com/photo-1580810734586-763f9a2cfcb4?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60",
			AverageRating: 3,
			ReviewCount:   56,
			Colors:        []string{"White", "Black"},
			Sizes:         []string{"8,000", "10,000", "14,000"},
		},
		{
			Name:          "Ultra Quiet Desk Fan",
			Description:   "Whisper-quiet operation with adjustable speeds and tilt.",
			Category:      models.CategoryFan,
			BasePrice:     3999,
			Image:         "https://images.unsplash.com/photo-1513506003901-1e6a229e2d15?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60",
			AverageRating: 4,
			ReviewCount:   204,
			Colors:        []string{"White", "Black", "Pink", "Blue"},
			Sizes:         []string{"6 inch", "9 inch", "12 inch"},
		},
	}
}
