package handlers

import (
	"net/http"

	restaurantRepo "tabletalk/database/repository/restaurant"
	"tabletalk/utils"

	"github.com/gin-gonic/gin"
)

// RestaurantHandler serves the read-only venue catalog.
type RestaurantHandler struct {
	Repo restaurantRepo.RestaurantRepository
}

func NewRestaurantHandler(repo restaurantRepo.RestaurantRepository) *RestaurantHandler {
	return &RestaurantHandler{Repo: repo}
}

// GetRestaurantsHandler lists the catalog.
func (h *RestaurantHandler) GetRestaurantsHandler(c *gin.Context) {
	restaurants, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch restaurants", err.Error())
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

// GetRestaurantByIDHandler fetches a single venue.
func (h *RestaurantHandler) GetRestaurantByIDHandler(c *gin.Context) {
	restaurant, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Error fetching restaurant", err.Error())
		return
	}
	if restaurant == nil {
		utils.JSONError(c, http.StatusNotFound, "Restaurant not found", "")
		return
	}
	c.JSON(http.StatusOK, restaurant)
}
