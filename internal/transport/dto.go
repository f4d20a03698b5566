package transport

import "github.com/pocketshop/backend/internal/models"

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateShopRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LocationID  string `json:"locationId"`
	Image       []byte `json:"image,omitempty"`
}

type EditShopRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	LocationID  string   `json:"locationId"`
	Categories  []string `json:"categories"`
	Image       []byte   `json:"image,omitempty"`
}

type CreateProductRequest struct {
	Name                  string  `json:"name"`
	Description           string  `json:"description"`
	Price                 float64 `json:"price"`
	EstimatedPrepTime     float64 `json:"estimatedPrepTime"`
	CategoryOrderingIndex int     `json:"categoryOrderingIndex"`
	ImageURL              string  `json:"imageURL"`
}

type EditProductRequest struct {
	Name                  *string  `json:"name"`
	Description           *string  `json:"description"`
	Price                 *float64 `json:"price"`
	EstimatedPrepTime     *float64 `json:"estimatedPrepTime"`
	CategoryOrderingIndex *int     `json:"categoryOrderingIndex"`
	IsOutOfStock          *bool    `json:"isOutOfStock"`
}

type MoveProductRequest struct {
	ProductID  string `json:"productId"`
	ToPosition int    `json:"toPosition"`
}

type PlaceOrderRequest struct {
	ProductID string                `json:"productId"`
	Quantity  int                   `json:"quantity"`
	Choices   []models.OptionChoice `json:"choices,omitempty"`
}
