package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Zalotleh/wellness-hub-sub004/models"
	"github.com/Zalotleh/wellness-hub-sub004/services"
	"github.com/Zalotleh/wellness-hub-sub004/utils"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	Engine *services.RecommendationService
	Store  *services.RecommendationStore
}

func NewRecommendationController(engine *services.RecommendationService, store *services.RecommendationStore) *RecommendationController {
	return &RecommendationController{Engine: engine, Store: store}
}

// NextAction serves GET /recommendations/next-action?date=YYYY-MM-DD.
// A day with nothing to recommend returns an explicit null, not an error.
func (h *RecommendationController) NextAction(c *gin.Context) {
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

	rec, cached, err := h.Engine.NextAction(userID, date)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	if rec == nil {
		c.JSON(http.StatusOK, gin.H{
			"recommendation": nil,
			"cached":         false,
			"message":        "no recommendation needed at this time",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendation": rec, "cached": cached})
}

func (h *RecommendationController) Accept(c *gin.Context) {
	userID, id, ok := h.ownedID(c)
	if !ok {
		return
	}
	rec, err := h.Store.Accept(userID, id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendation": rec})
}

func (h *RecommendationController) Dismiss(c *gin.Context) {
	userID, id, ok := h.ownedID(c)
	if !ok {
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body) // body is optional

	rec, err := h.Store.Dismiss(userID, id, body.Reason)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendation": rec})
}

func (h *RecommendationController) UpdateStatus(c *gin.Context) {
	userID, id, ok := h.ownedID(c)
	if !ok {
		return
	}

	var body struct {
		Status               string `json:"status" binding:"required"`
		Reason               string `json:"reason"`
		LinkedRecipeID       string `json:"linked_recipe_id"`
		LinkedShoppingListID string `json:"linked_shopping_list_id"`
		LinkedMealLogID      string `json:"linked_meal_log_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := models.ParseRecommendationStatus(body.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "status"})
		return
	}

	rec, err := h.Store.Transition(userID, id, status, services.TransitionOptions{
		DismissReason:        body.Reason,
		LinkedRecipeID:       body.LinkedRecipeID,
		LinkedShoppingListID: body.LinkedShoppingListID,
		LinkedMealLogID:      body.LinkedMealLogID,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendation": rec})
}

func (h *RecommendationController) History(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	typeFilter := c.Query("type")

	recs, stats, err := h.Store.History(userID, days, typeFilter, limit)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs, "stats": stats})
}

func (h *RecommendationController) ownedID(c *gin.Context) (uint, uint, bool) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, 0, false
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recommendation id", "field": "id"})
		return 0, 0, false
	}
	return userID, uint(id), true
}
