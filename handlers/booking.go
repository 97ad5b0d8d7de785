package handlers

import (
	"net/http"
	"strings"

	bookingRepo "tabletalk/database/repository/booking"
	restaurantRepo "tabletalk/database/repository/restaurant"
	"tabletalk/models"
	"tabletalk/services/dialogue"
	"tabletalk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves booking creation and the CRUD listing screens.
type BookingHandler struct {
	Svc         dialogue.DialogueService
	Repo        bookingRepo.BookingRepository
	Restaurants restaurantRepo.RestaurantRepository
}

func NewBookingHandler(svc dialogue.DialogueService, repo bookingRepo.BookingRepository, restaurants restaurantRepo.RestaurantRepository) *BookingHandler {
	return &BookingHandler{Svc: svc, Repo: repo, Restaurants: restaurants}
}

// restaurantSummary is the venue slice embedded in booking listings.
type restaurantSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Cuisine string `json:"cuisine"`
	Address string `json:"address"`
}

type bookingWithRestaurant struct {
	models.Booking
	Restaurant *restaurantSummary `json:"restaurant,omitempty"`
}

// CreateBookingHandler persists a booking from an explicit payload.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.CustomerName == "" || input.BookingDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customerName and bookingDate are required"})
		return
	}

	booking, err := h.Svc.CreateBooking(c.Request.Context(), input)
	if err != nil {
		if dialogue.IsVenueNotResolved(err) {
			utils.JSONError(c, http.StatusBadRequest, "Restaurant not identified", err.Error())
			return
		}
		logger.Error("Failed to create booking", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create booking", "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Booking confirmed!", "booking": booking})
}

// GetBookingsHandler lists bookings newest first with their venue summary.
func (h *BookingHandler) GetBookingsHandler(c *gin.Context) {
	ctx := c.Request.Context()

	bookings, err := h.Repo.GetAll(ctx)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch bookings", err.Error())
		return
	}

	restaurants, err := h.Restaurants.GetAll(ctx)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch bookings", err.Error())
		return
	}
	byID := make(map[string]models.Restaurant, len(restaurants))
	for _, r := range restaurants {
		byID[r.ID] = r
	}

	out := make([]bookingWithRestaurant, 0, len(bookings))
	for _, b := range bookings {
		item := bookingWithRestaurant{Booking: b}
		if r, ok := byID[b.RestaurantID]; ok {
			item.Restaurant = &restaurantSummary{ID: r.ID, Name: r.Name, Cuisine: r.Cuisine, Address: r.Address}
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, out)
}

// DeleteBookingHandler cancels a booking.
func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	if err := h.Repo.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.JSONError(c, http.StatusNotFound, "Booking not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Error cancelling", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}
