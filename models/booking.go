package models

import "time"

// Booking statuses.
const (
	BookingStatusConfirmed = "Confirmed"
	BookingStatusPending   = "Pending"
	BookingStatusCancelled = "Cancelled"
)

// WeatherInfo is the forecast captured alongside a booking, if one was fetched.
type WeatherInfo struct {
	Condition string  `bson:"condition" json:"condition"`
	TempC     float64 `bson:"tempC" json:"tempC"`
}

// Booking represents a confirmed reservation record. The dialogue engine
// creates it exactly once per conversation and never mutates it afterwards.
type Booking struct {
	ID                string       `bson:"id" json:"id"`
	RestaurantID      string       `bson:"restaurantId" json:"restaurantId"`
	CustomerName      string       `bson:"customerName" json:"customerName"`
	NumberOfGuests    int          `bson:"numberOfGuests" json:"numberOfGuests"`
	BookingDate       string       `bson:"bookingDate" json:"bookingDate"` // "YYYY-MM-DD"
	BookingTime       string       `bson:"bookingTime" json:"bookingTime"`
	CuisinePreference string       `bson:"cuisinePreference" json:"cuisinePreference"`
	SpecialRequests   string       `bson:"specialRequests" json:"specialRequests"`
	SeatingPreference string       `bson:"seatingPreference" json:"seatingPreference"` // Indoor | Outdoor | Any
	Status            string       `bson:"status" json:"status"`
	WeatherInfo       *WeatherInfo `bson:"weatherInfo,omitempty" json:"weatherInfo,omitempty"`
	CreatedAt         time.Time    `bson:"createdAt" json:"createdAt"`
}

// BookingInput is the payload for creating a booking directly. Either
// RestaurantID or RestaurantName must identify the venue.
type BookingInput struct {
	RestaurantID      string       `json:"restaurantId"`
	RestaurantName    string       `json:"restaurantName"`
	CustomerName      string       `json:"customerName"`
	NumberOfGuests    int          `json:"numberOfGuests"`
	BookingDate       string       `json:"bookingDate"`
	BookingTime       string       `json:"bookingTime"`
	CuisinePreference string       `json:"cuisinePreference"`
	SpecialRequests   string       `json:"specialRequests"`
	SeatingPreference string       `json:"seatingPreference"`
	Status            string       `json:"status"`
	WeatherInfo       *WeatherInfo `json:"weatherInfo,omitempty"`
}
