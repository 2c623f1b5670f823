package handlers

import (
	"net/http"

	"fjelldrift/internal/http/middleware"
	"fjelldrift/internal/observability/metrics"
	"fjelldrift/internal/services"

	"github.com/gin-gonic/gin"
)

func mapService(c *gin.Context) services.MapService {
	return services.MapService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/map/plowing
// The operator map for today's round.
func GetPlowMap(c *gin.Context) {
	now, ok := referenceTime(c)
	if !ok {
		return
	}
	markers, err := mapService(c).PlowToday(now)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	active := 0
	for _, m := range markers {
		if m.Status == "Aktiv" {
			active++
		}
	}
	metrics.SetActiveBookings(active)

	c.JSON(http.StatusOK, gin.H{"markers": markers, "active": active})
}

// GET /api/map/plowing/upcoming
func GetUpcomingPlowMap(c *gin.Context) {
	now, ok := referenceTime(c)
	if !ok {
		return
	}
	markers, err := mapService(c).PlowUpcoming(now)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"markers": markers})
}

// GET /api/map/sanding
func GetSandingMap(c *gin.Context) {
	now, ok := referenceTime(c)
	if !ok {
		return
	}
	markers, err := mapService(c).Sanding(now)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"markers": markers})
}
