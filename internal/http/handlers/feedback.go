package handlers

import (
	"net/http"
	"strconv"

	"fjelldrift/internal/domain"
	"fjelldrift/internal/http/middleware"
	"fjelldrift/internal/repositories"
	"fjelldrift/internal/services"
	"fjelldrift/internal/utils"

	"github.com/gin-gonic/gin"
)

func feedbackService(c *gin.Context) services.FeedbackService {
	return services.FeedbackService{RequestID: middleware.GetRequestID(c)}
}

type createFeedbackRequest struct {
	Type    string `json:"type"`
	Comment string `json:"comment"`
	Hidden  bool   `json:"hidden"`
}

// POST /api/feedback
func CreateFeedback(c *gin.Context) {
	var req createFeedbackRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	id, err := feedbackService(c).Create(req.Type, req.Comment, middleware.UserID(c), req.Hidden, utils.Now())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GET /api/feedback
func GetFeedback(c *gin.Context) {
	q := repositories.FeedbackQuery{
		Start: c.Query("start"),
		End:   c.Query("end"),
	}
	q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	q.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if middleware.Role(c) == "admin" {
		q.IncludeHidden = c.Query("include_hidden") == "true"
		q.Cabin = c.Query("cabin")
	} else {
		q.Cabin = middleware.UserID(c)
	}
	out, err := feedbackService(c).List(q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"feedback":   out,
		"pagination": domain.Pagination{Limit: q.Limit, Offset: q.Offset},
	})
}

// GET /api/feedback/:id
func GetFeedbackByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	f, err := feedbackService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if middleware.Role(c) != "admin" && f.Submitter != middleware.UserID(c) {
		RespondError(c, http.StatusForbidden, "not your feedback", nil)
		return
	}
	c.JSON(http.StatusOK, f)
}

type feedbackStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/admin/feedback/:id/status
func UpdateFeedbackStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req feedbackStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := feedbackService(c).UpdateStatus(id, req.Status, middleware.UserID(c), utils.Now()); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

type feedbackHiddenRequest struct {
	Hidden bool `json:"hidden"`
}

// PUT /api/admin/feedback/:id/hidden
func SetFeedbackHidden(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req feedbackHiddenRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := feedbackService(c).SetHidden(id, req.Hidden); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "visibility updated"})
}

// DELETE /api/admin/feedback/:id
func DeleteFeedback(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := feedbackService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "feedback deleted"})
}

// GET /api/admin/feedback/stats?start=...&end=...
func GetFeedbackStats(c *gin.Context) {
	stats, err := feedbackService(c).Statistics(c.Query("start"), c.Query("end"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
