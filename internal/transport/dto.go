package transport

import "github.com/mbalagam/marketplace/internal/models"

type CreateItemRequest struct {
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
}

type PurchaseRequest struct {
	ItemID   int    `json:"item_id"`
	Quantity int    `json:"quantity"`
	Buyer    string `json:"buyer"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	User        *models.UserProfile `json:"user"`
	AccessToken string              `json:"access_token,omitempty"`
}
