package models

// Field names must stay as-is: existing items.json/purchases.json data files
// were written with these keys.

type Item struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
	UserID      *int    `json:"user_id"`
}

type Purchase struct {
	ID         int     `json:"id"`
	ItemID     int     `json:"item_id"`
	Quantity   int     `json:"quantity"`
	Buyer      string  `json:"buyer"`
	TotalPrice float64 `json:"total_price"`
	UserID     *int    `json:"user_id"`
}

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// UserProfile is the public view of a User with the credential field stripped.
type UserProfile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type UserActivity struct {
	UserID              int     `json:"user_id"`
	Username            string  `json:"username"`
	ListingsCount       int     `json:"listings_count"`
	PurchasesCount      int     `json:"purchases_count"`
	TotalItemsListed    int     `json:"total_items_listed"`
	TotalItemsPurchased int     `json:"total_items_purchased"`
	TotalSpent          float64 `json:"total_spent"`
}
