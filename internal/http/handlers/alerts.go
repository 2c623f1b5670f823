package handlers

import (
	"net/http"

	"fjelldrift/internal/http/middleware"
	"fjelldrift/internal/services"
	"fjelldrift/internal/utils"

	"github.com/gin-gonic/gin"
)

func alertService(c *gin.Context) services.AlertService {
	return services.AlertService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/alerts
// The resident view: alerts that are live right now.
func GetActiveAlerts(c *gin.Context) {
	now, ok := referenceTime(c)
	if !ok {
		return
	}
	out, err := alertService(c).Active(now)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": out})
}

// GET /api/admin/alerts?only_today=true&include_expired=true
func GetAlertsAdmin(c *gin.Context) {
	now, ok := referenceTime(c)
	if !ok {
		return
	}
	out, err := alertService(c).List(
		c.Query("only_today") == "true",
		c.Query("include_expired") == "true",
		now,
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": out})
}

type alertRequest struct {
	Type             string   `json:"type"`
	Message          string   `json:"message"`
	ExpiryDate       string   `json:"expiry_date"`
	TargetGroups     []string `json:"target_groups"`
	DisplayOnWeather bool     `json:"display_on_weather"`
	Status           string   `json:"status"`
}

// POST /api/admin/alerts
func CreateAlert(c *gin.Context) {
	var req alertRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	id, err := alertService(c).Create(
		req.Type, req.Message, req.ExpiryDate, req.TargetGroups,
		req.DisplayOnWeather, middleware.UserID(c), utils.Now(),
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/admin/alerts/:id
func UpdateAlert(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req alertRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := alertService(c).Update(id, req.Type, req.Message, req.ExpiryDate, req.TargetGroups, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "alert updated"})
}

// DELETE /api/admin/alerts/:id
func DeleteAlert(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := alertService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "alert deleted"})
}
