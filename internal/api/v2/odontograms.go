// internal/api/v2/odontograms.go
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/odontosys/odontosys/internal/datastore"
	"github.com/odontosys/odontosys/internal/errors"
	"github.com/odontosys/odontosys/internal/odontogram"
)

// initOdontogramRoutes registers the charting session endpoints
func (c *Controller) initOdontogramRoutes() {
	c.Group.GET("/patients/:id/odontograms", c.GetPatientOdontograms)
	c.Group.GET("/odontograms/:id", c.GetOdontogram)
	c.Group.GET("/odontograms/:id/findings", c.GetOdontogramFindings)
	c.Group.POST("/odontograms", c.SaveOdontogram)
	c.Group.DELETE("/odontograms/:id", c.DeleteOdontogram)
}

// FindingRequest represents one finding in a save request
type FindingRequest struct {
	ToothNumber int     `json:"toothNumber"`
	Surface     string  `json:"surface,omitempty"`
	Code        string  `json:"code"`
	Note        string  `json:"note,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	IsPlanned   bool    `json:"isPlanned"`
}

// BudgetLineRequest represents one presupuesto line in a save request
type BudgetLineRequest struct {
	Piece       string  `json:"piece,omitempty"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// OdontogramRequest represents the body for saving a full charting session
type OdontogramRequest struct {
	ID        uint                `json:"id,omitempty"`
	PatientID uint                `json:"patientId"`
	Type      string              `json:"type"`
	Date      string              `json:"date"`
	Notes     string              `json:"notes,omitempty"`
	Findings  []FindingRequest    `json:"findings"`
	Budget    []BudgetLineRequest `json:"budget,omitempty"`
}

// FindingResponse represents one stored finding, rehydrated through the catalog
type FindingResponse struct {
	ToothNumber int      `json:"toothNumber"`
	Surface     string   `json:"surface"`
	Code        string   `json:"code"`
	DisplayName string   `json:"displayName"`
	Icon        string   `json:"icon,omitempty"`
	Intent      string   `json:"intent"`
	Color       string   `json:"color"`
	X           *float64 `json:"x,omitempty"`
	Y           *float64 `json:"y,omitempty"`
	Note        string   `json:"note,omitempty"`
}

// BudgetLineResponse represents one presupuesto line
type BudgetLineResponse struct {
	Piece       string  `json:"piece,omitempty"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// OdontogramResponse represents a charting session with its children
type OdontogramResponse struct {
	ID          uint                 `json:"id"`
	PatientID   uint                 `json:"patientId"`
	Type        string               `json:"type"`
	Date        string               `json:"date"`
	Notes       string               `json:"notes,omitempty"`
	Findings    []FindingResponse    `json:"findings"`
	Budget      []BudgetLineResponse `json:"budget,omitempty"`
	BudgetTotal float64              `json:"budgetTotal"`
}

// handleStoreError maps datastore errors onto HTTP responses.
func (c *Controller) handleStoreError(ctx echo.Context, err error, resource string) error {
	if errors.IsNotFound(err) {
		return c.HandleError(ctx, err, resource+" not found", http.StatusNotFound)
	}
	return c.HandleError(ctx, err, "Failed to load "+resource, http.StatusInternalServerError)
}

func toFindingResponse(rec *datastore.FindingRecord) FindingResponse {
	f := datastore.FromRecord(rec)
	resp := FindingResponse{
		ToothNumber: f.ToothNumber,
		Surface:     f.Surface,
		Code:        f.TreatmentCode,
		DisplayName: f.DisplayName,
		Icon:        f.Icon,
		Intent:      string(f.Intent),
		Color:       f.Intent.Color(),
		Note:        f.Note,
	}
	resp.X = rec.CoordX
	resp.Y = rec.CoordY
	return resp
}

func toOdontogramResponse(og *datastore.Odontogram) OdontogramResponse {
	resp := OdontogramResponse{
		ID:        og.ID,
		PatientID: og.PatientID,
		Type:      og.Type,
		Date:      og.Date,
		Notes:     og.Notes,
		Findings:  []FindingResponse{},
	}
	for i := range og.Findings {
		resp.Findings = append(resp.Findings, toFindingResponse(&og.Findings[i]))
	}
	for i := range og.BudgetLines {
		line := &og.BudgetLines[i]
		resp.Budget = append(resp.Budget, BudgetLineResponse{
			Piece:       line.Piece,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Total:       line.Total(),
		})
	}
	resp.BudgetTotal = datastore.BudgetTotal(og.BudgetLines)
	return resp
}

// GetPatientOdontograms handles GET /patients/:id/odontograms
func (c *Controller) GetPatientOdontograms(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid patient ID", http.StatusBadRequest)
	}

	ogs, err := c.DS.ListOdontogramsByPatient(uint(id))
	if err != nil {
		return c.HandleError(ctx, err, "Failed to list odontograms", http.StatusInternalServerError)
	}

	results := make([]OdontogramResponse, 0, len(ogs))
	for i := range ogs {
		results = append(results, toOdontogramResponse(&ogs[i]))
	}
	return ctx.JSON(http.StatusOK, results)
}

// GetOdontogram handles GET /odontograms/:id
func (c *Controller) GetOdontogram(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid odontogram ID", http.StatusBadRequest)
	}

	og, err := c.DS.GetOdontogram(uint(id))
	if err != nil {
		return c.handleStoreError(ctx, err, "odontogram")
	}

	return ctx.JSON(http.StatusOK, toOdontogramResponse(&og))
}

// GetOdontogramFindings handles GET /odontograms/:id/findings, returning the
// stored findings in tooth order.
func (c *Controller) GetOdontogramFindings(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid odontogram ID", http.StatusBadRequest)
	}

	if _, err := c.DS.GetOdontogram(uint(id)); err != nil {
		return c.handleStoreError(ctx, err, "odontogram")
	}

	records, err := c.DS.GetFindings(uint(id))
	if err != nil {
		return c.HandleError(ctx, err, "Failed to load findings", http.StatusInternalServerError)
	}

	results := make([]FindingResponse, 0, len(records))
	for i := range records {
		results = append(results, toFindingResponse(&records[i]))
	}
	return ctx.JSON(http.StatusOK, results)
}

// SaveOdontogram handles POST /odontograms. The whole session is saved in
// one transaction: parent record, findings upserted on their natural key,
// budget lines replaced.
func (c *Controller) SaveOdontogram(ctx echo.Context) error {
	var req OdontogramRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}

	if req.PatientID == 0 {
		return c.HandleError(ctx, nil, "patientId is required", http.StatusBadRequest)
	}
	if req.Type != "inicial" && req.Type != "evolutivo" {
		return c.HandleError(ctx, nil, "type must be \"inicial\" or \"evolutivo\"", http.StatusBadRequest)
	}
	for i := range req.Findings {
		if !odontogram.ValidTooth(req.Findings[i].ToothNumber) {
			return c.HandleError(ctx, nil,
				"invalid tooth number "+strconv.Itoa(req.Findings[i].ToothNumber), http.StatusBadRequest)
		}
	}

	og := datastore.Odontogram{
		ID:        req.ID,
		PatientID: req.PatientID,
		Type:      req.Type,
		Date:      req.Date,
		Notes:     req.Notes,
	}

	findings := make([]datastore.FindingRecord, 0, len(req.Findings))
	for i := range req.Findings {
		fr := &req.Findings[i]
		f := odontogram.FindingFromStored(fr.ToothNumber, fr.Surface, fr.Code, fr.Note, fr.X, fr.Y, fr.IsPlanned)
		findings = append(findings, datastore.ToRecord(0, &f))
	}

	budget := make([]datastore.BudgetLine, 0, len(req.Budget))
	for i := range req.Budget {
		b := &req.Budget[i]
		budget = append(budget, datastore.BudgetLine{
			Piece:       b.Piece,
			Description: b.Description,
			Quantity:    b.Quantity,
			UnitPrice:   b.UnitPrice,
		})
	}

	start := time.Now()
	if err := c.DS.SaveOdontogram(&og, findings, budget); err != nil {
		if c.metrics != nil {
			c.metrics.Datastore.RecordSave("error", time.Since(start).Seconds(), 0)
		}
		return c.HandleError(ctx, err, "Failed to save odontogram", http.StatusInternalServerError)
	}
	if c.metrics != nil {
		c.metrics.Datastore.RecordSave("success", time.Since(start).Seconds(), len(findings))
	}

	// Invalidate any cached chart for this session
	c.renderCache.Flush()

	saved, err := c.DS.GetOdontogram(og.ID)
	if err != nil {
		return c.handleStoreError(ctx, err, "odontogram")
	}
	return ctx.JSON(http.StatusOK, toOdontogramResponse(&saved))
}

// DeleteOdontogram handles DELETE /odontograms/:id
func (c *Controller) DeleteOdontogram(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid odontogram ID", http.StatusBadRequest)
	}

	if err := c.DS.DeleteOdontogram(uint(id)); err != nil {
		return c.HandleError(ctx, err, "Failed to delete odontogram", http.StatusInternalServerError)
	}

	c.renderCache.Flush()
	return ctx.NoContent(http.StatusNoContent)
}
