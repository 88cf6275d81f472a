package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"maritime-threats-backend/pkg/inmem"
	"maritime-threats-backend/pkg/model"
)

type ThreatController struct {
	threatService model.ThreatService
}

func NewThreatController(threatService model.ThreatService) *ThreatController {
	return &ThreatController{
		threatService: threatService,
	}
}

// ListThreats godoc
// @Summary List threats
// @Description Retrieves threats from the database, newest first, with pagination
// @Tags Threat
// @Accept json
// @Produce json
// @Param page query int false "Page number for pagination"
// @Param limit query int false "Number of items per page for pagination"
// @Success 200 {object} model.ThreatListResponse "List of threats"
// @Failure 500 {object} model.Response "Internal Server Error"
// @Router /api/threats [get]
func (ctrl *ThreatController) ListThreats(c *gin.Context) {
	page, limit := RetrievePagination(c)
	threats, err := ctrl.threatService.FindAll(c, int64(page), int64(limit))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, model.Response{
			Msg: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.ThreatListResponse{
		Data: threats,
	})
}

// GetThreatByID godoc
// @Summary Get a threat by ID
// @Description Retrieves a single threat by its ID
// @Tags Threat
// @Accept json
// @Produce json
// @Param id path string true "Threat ID"
// @Success 200 {object} model.ThreatResponse
// @Failure 404 {object} model.Response
// @Router /api/threats/{id} [get]
func (ctrl *ThreatController) GetThreatByID(c *gin.Context) {
	id := c.Param("id")
	threat, err := ctrl.threatService.FindByID(c, id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		c.AbortWithStatusJSON(status, model.Response{
			Msg: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.ThreatResponse{
		Data: threat,
	})
}

// SearchThreats godoc
// @Summary Search threats
// @Description Queries the in-memory index by region, category and country
// @Tags Threat
// @Accept json
// @Produce json
// @Param region query string false "Region filter"
// @Param category query string false "Category filter"
// @Param country query string false "Country filter"
// @Param offset query int false "Result offset"
// @Param limit query int false "Maximum number of results"
// @Success 200 {object} model.ThreatListResponse "Matching threats"
// @Failure 404 {object} model.Response "No matching threats"
// @Failure 500 {object} model.Response "Internal Server Error"
// @Router /api/threats/search [get]
func (ctrl *ThreatController) SearchThreats(c *gin.Context) {
	offset, _ := strconv.Atoi(c.Query("offset"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	req := &model.SearchThreatsRequest{
		Region:   c.Query("region"),
		Category: c.Query("category"),
		Country:  c.Query("country"),
		Offset:   offset,
		Limit:    limit,
	}

	threats, total, err := ctrl.threatService.Search(c, req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, inmem.ErrNoThreatsFound) || errors.Is(err, inmem.ErrOffsetOutOfRange) {
			status = http.StatusNotFound
		}
		c.AbortWithStatusJSON(status, model.Response{
			Msg: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.ThreatListResponse{
		Data:  threats,
		Total: total,
	})
}

// CreateThreat godoc
// @Summary Create a threat
// @Description Stores a manually submitted threat report
// @Tags Threat
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param threat body model.ThreatReport true "Threat report"
// @Success 201 {object} model.ThreatResponse "Threat successfully created"
// @Failure 400 {object} model.Response "Bad Request - Invalid input"
// @Failure 500 {object} model.Response "Internal Server Error"
// @Router /api/threats [post]
func (ctrl *ThreatController) CreateThreat(c *gin.Context) {
	var report model.ThreatReport
	if err := c.ShouldBindJSON(&report); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, model.Response{
			Msg: err.Error(),
		})
		return
	}

	threat := report.ToThreat()
	if _, err := ctrl.threatService.Store(c, threat); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, model.Response{
			Msg: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, model.ThreatResponse{
		Data: threat,
	})
}
