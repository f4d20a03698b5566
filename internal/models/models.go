package models

const (
	RoleVendor   = "vendor"
	RoleCustomer = "customer"
)

type Account struct {
	ID           string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username     string `gorm:"uniqueIndex;not null"        json:"username"`
	PasswordHash string `gorm:"not null"                    json:"-"`
	Role         string `gorm:"not null"                    json:"role"`
}

type Shop struct {
	ID          string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string `gorm:"not null"                    json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageURL"`
	LocationID  string `json:"locationId"`
	IsClosed    bool   `json:"isClosed"`
	OwnerID     string `gorm:"index;not null"              json:"ownerId"`

	// per-shop collection number counter, bumped atomically on order creation
	NextCollectionNo int `gorm:"not null;default:0" json:"-"`

	Categories   []ShopCategory `gorm:"foreignKey:ShopID" json:"categories"`
	SoldProducts []Product      `gorm:"foreignKey:ShopID" json:"soldProducts"`
}

type ShopCategory struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	ShopID        string `gorm:"index;not null"           json:"-"`
	Title         string `gorm:"not null"                 json:"title"`
	OrderingIndex int    `gorm:"not null"                 json:"orderingIndex"`
}

type Product struct {
	ID                    string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ShopID                string  `gorm:"index;not null"              json:"shopId"`
	ShopName              string  `json:"shopName"`
	Name                  string  `gorm:"not null"                    json:"name"`
	Description           string  `json:"description"`
	Price                 float64 `gorm:"not null"                    json:"price"`
	ImageURL              string  `json:"imageURL"`
	EstimatedPrepTime     float64 `json:"estimatedPrepTime"`
	IsOutOfStock          bool    `json:"isOutOfStock"`
	CategoryOrderingIndex int     `json:"categoryOrderingIndex"`

	// insertion order within the shop's sold products
	ShopPosition int `gorm:"not null" json:"-"`
}

type Favourite struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"            json:"-"`
	CustomerID string `gorm:"uniqueIndex:idx_customer_product;not null" json:"customerId"`
	ProductID  string `gorm:"uniqueIndex:idx_customer_product;not null" json:"productId"`
}

type ShopImage struct {
	ShopID string `gorm:"primaryKey;type:varchar(36)"`
	Data   []byte `gorm:"type:bytes"`
}

type RefreshToken struct {
	JTI       string `gorm:"primaryKey;type:varchar(36)"`
	AccountID string `gorm:"index;not null"`
	ExpiresAt int64  `gorm:"not null"`
	Revoked   bool   `gorm:"not null;default:false"`
}
