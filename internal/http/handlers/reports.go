package handlers

import (
	"net/http"

	"fjelldrift/internal/http/middleware"
	"fjelldrift/internal/services"
	"fjelldrift/internal/utils"

	"github.com/gin-gonic/gin"
)

func reportService(c *gin.Context) services.ReportService {
	return services.ReportService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/admin/reports/feedback?start=...&end=...
func GetFeedbackReportPDF(c *gin.Context) {
	data, filename, err := reportService(c).FeedbackReportPDF(c.Query("start"), c.Query("end"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// GET /api/admin/reports/bookings
func GetBookingsExport(c *gin.Context) {
	data, filename, err := reportService(c).BookingsXLSX(utils.Now())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
