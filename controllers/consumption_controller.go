package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Zalotleh/wellness-hub-sub004/services"
	"github.com/Zalotleh/wellness-hub-sub004/utils"

	"github.com/gin-gonic/gin"
)

type ConsumptionController struct {
	Svc *services.ConsumptionService
}

func NewConsumptionController(svc *services.ConsumptionService) *ConsumptionController {
	return &ConsumptionController{Svc: svc}
}

func (h *ConsumptionController) LogFood(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		Date   string                     `json:"date"`
		Slot   string                     `json:"meal_slot" binding:"required"`
		Source string                     `json:"source"`
		Items  []services.FoodItemRequest `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := time.Now()
	if body.Date != "" {
		parsed, err := utils.ParseDateKey(body.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "date"})
			return
		}
		date = parsed
	}

	record, err := h.Svc.LogFood(userID, date, body.Slot, body.Source, body.Items)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *ConsumptionController) ListByDay(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	date := time.Now()
	if v := c.Query("date"); v != "" {
		parsed, err := utils.ParseDateKey(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "date"})
			return
		}
		date = parsed
	}

	records, err := h.Svc.ListByDay(userID, date)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *ConsumptionController) DeleteRecord(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id", "field": "id"})
		return
	}

	if err := h.Svc.DeleteRecord(userID, uint(id)); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *ConsumptionController) Favorites(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	favorites, err := h.Svc.FavoriteFoods(userID, days, limit)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}
