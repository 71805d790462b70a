package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Zalotleh/wellness-hub-sub004/config"
	"github.com/Zalotleh/wellness-hub-sub004/models"
	"github.com/Zalotleh/wellness-hub-sub004/services"
	"github.com/Zalotleh/wellness-hub-sub004/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ScoreController struct {
	Cache *services.ScoreCacheService
}

func NewScoreController(cache *services.ScoreCacheService) *ScoreController {
	return &ScoreController{Cache: cache}
}

// GetScore serves GET /progress/score?date=YYYY-MM-DD&view=daily|weekly|monthly.
func (h *ScoreController) GetScore(c *gin.Context) {
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

	view := c.DefaultQuery("view", "daily")
	switch view {
	case "daily":
		score, err := h.Cache.GetOrCompute(userID, date)
		if err != nil {
			abortWithServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"score": score, "view": view})
	case "weekly":
		start := utils.StartOfWeek(date)
		summary, err := h.Cache.Rollup(userID, start, start.AddDate(0, 0, 6))
		if err != nil {
			abortWithServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"summary": summary, "view": view})
	case "monthly":
		summary, err := h.Cache.Rollup(userID, utils.StartOfMonth(date), utils.EndOfMonth(date))
		if err != nil {
			abortWithServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"summary": summary, "view": view})
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid view: must be daily, weekly or monthly",
			"field": "view",
		})
	}
}

// EmailSummary mails the caller their rollup for the requested view.
func (h *ScoreController) EmailSummary(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	view := c.DefaultQuery("view", "weekly")
	date := time.Now()
	var from, to time.Time
	switch view {
	case "weekly":
		from = utils.StartOfWeek(date)
		to = from.AddDate(0, 0, 6)
	case "monthly":
		from = utils.StartOfMonth(date)
		to = utils.EndOfMonth(date)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid view: must be weekly or monthly", "field": "view"})
		return
	}

	summary, err := h.Cache.Rollup(userID, from, to)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := utils.SendSummaryEmail(
		user.Email, view,
		summary.AverageScore, summary.CompletionRate,
		summary.DaysWithData, summary.TotalDays, summary.TotalMeals,
	); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": true, "view": view})
}
