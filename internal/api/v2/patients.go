// internal/api/v2/patients.go
package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/odontosys/odontosys/internal/datastore"
)

// initPatientRoutes registers the patient endpoints
func (c *Controller) initPatientRoutes() {
	c.Group.GET("/patients", c.GetPatients)
	c.Group.GET("/patients/:id", c.GetPatient)
	c.Group.POST("/patients", c.SavePatient)
}

// PatientRequest represents the body for creating or updating a patient
type PatientRequest struct {
	ID            uint   `json:"id,omitempty"`
	HistoryNumber string `json:"historyNumber"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Document      string `json:"document"`
}

// PatientResponse represents a patient in the API response
type PatientResponse struct {
	ID            uint   `json:"id"`
	HistoryNumber string `json:"historyNumber"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Document      string `json:"document"`
}

func toPatientResponse(p *datastore.Patient) PatientResponse {
	return PatientResponse{
		ID:            p.ID,
		HistoryNumber: p.HistoryNumber,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Document:      p.Document,
	}
}

// GetPatients handles GET /patients with search and pagination
func (c *Controller) GetPatients(ctx echo.Context) error {
	query := ctx.QueryParam("query")
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	offset, _ := strconv.Atoi(ctx.QueryParam("offset"))

	if limit <= 0 {
		limit = 100
	} else if limit > 1000 {
		limit = 1000
	}

	patients, total, err := c.DS.SearchPatients(query, limit, offset)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to search patients", http.StatusInternalServerError)
	}

	results := make([]PatientResponse, 0, len(patients))
	for i := range patients {
		results = append(results, toPatientResponse(&patients[i]))
	}

	currentPage := (offset / limit) + 1
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return ctx.JSON(http.StatusOK, PaginatedResponse{
		Data:        results,
		Total:       total,
		Limit:       limit,
		Offset:      offset,
		CurrentPage: currentPage,
		TotalPages:  totalPages,
	})
}

// GetPatient handles GET /patients/:id
func (c *Controller) GetPatient(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid patient ID", http.StatusBadRequest)
	}

	patient, err := c.DS.GetPatient(uint(id))
	if err != nil {
		return c.handleStoreError(ctx, err, "patient")
	}

	return ctx.JSON(http.StatusOK, toPatientResponse(&patient))
}

// SavePatient handles POST /patients
func (c *Controller) SavePatient(ctx echo.Context) error {
	var req PatientRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}

	if req.FirstName == "" || req.LastName == "" {
		return c.HandleError(ctx, nil, "First and last name are required", http.StatusBadRequest)
	}

	patient := datastore.Patient{
		ID:            req.ID,
		HistoryNumber: req.HistoryNumber,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Document:      req.Document,
	}
	if err := c.DS.SavePatient(&patient); err != nil {
		return c.HandleError(ctx, err, "Failed to save patient", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusOK, toPatientResponse(&patient))
}
