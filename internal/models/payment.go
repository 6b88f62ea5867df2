package models

import "time"

type Payment struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Price         float64   `json:"price"`
	TransactionID string    `json:"transactionId"`
	MenuItemIDs   []int64   `json:"menuItemIds"`
	CartIDs       []int64   `json:"cartIds"`
	Date          time.Time `json:"date"`
}

type SettleRequest struct {
	Email         string    `json:"email"`
	Price         float64   `json:"price"`
	TransactionID string    `json:"transactionId"`
	MenuItemIDs   []int64   `json:"menuItemIds"`
	CartIDs       []int64   `json:"cartIds"`
	Date          time.Time `json:"date"`
}

// InsertResult and DeleteResult mirror the result documents the previous
// backend returned, so existing clients keep working.
type InsertResult struct {
	InsertedID *int64 `json:"insertedId"`
	Message    string `json:"message,omitempty"`
}

type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

type SettleResult struct {
	PaymentResult InsertResult `json:"paymentResult"`
	DeleteResult  DeleteResult `json:"deleteResult"`
}

type IntentRequest struct {
	Price float64 `json:"price"`
}

type IntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type AdminStats struct {
	Users     int64   `json:"users"`
	MenuItems int64   `json:"menuItems"`
	Orders    int64   `json:"orders"`
	Revenue   float64 `json:"revenue"`
}

type CategoryStat struct {
	Category string  `json:"category"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}
