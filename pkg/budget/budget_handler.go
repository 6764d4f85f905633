package budget

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/budgetly/budgetly/internal/rest"
	"github.com/budgetly/budgetly/pkg/category"
	"github.com/budgetly/budgetly/pkg/money"
	"github.com/budgetly/budgetly/pkg/period"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type BudgetDTO struct {
	Id        int         `json:"id"`
	Type      string      `json:"type"`
	Category  string      `json:"category,omitempty"`
	Amount    money.Money `json:"amount"`
	Timeframe string      `json:"timeframe"`
}

type InstanceDTO struct {
	Budget      BudgetDTO   `json:"budget"`
	PeriodStart string      `json:"periodStart"`
	PeriodEnd   string      `json:"periodEnd"`
	Expenditure money.Money `json:"expenditure"`
	// Utilization keeps its 4 fractional digits on the wire.
	Utilization json.Number `json:"utilization"`
}

type Handler struct {
	service  Service
	renderer UtilizationRenderer
}

func NewHandler(service Service, renderer UtilizationRenderer) *Handler {
	return &Handler{service, renderer}
}

// List godoc
// @Summary List the current user's budgets
// @Tags Budget
// @Produce json
// @Success 200 {array} BudgetDTO
// @Router /api/budgets [get]
// @Security Bearer
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	dtos := make([]BudgetDTO, 0, len(budgets))
	for _, b := range budgets {
		dtos = append(dtos, budgetToDTO(b))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Create a budget
// @Tags Budget
// @Accept json
// @Produce json
// @Param budget body BudgetDTO true "Budget"
// @Success 201 {object} BudgetDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 409 {object} rest.ErrorResponse "Budget with the same type, category and timeframe exists"
// @Router /api/budgets [post]
// @Security Bearer
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating budget")

	var dto BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteBadRequest(w, "Invalid request body format", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), DTOToBudget(dto))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, budgetToDTO(created))
}

// Update godoc
// @Summary Replace a budget
// @Tags Budget
// @Accept json
// @Produce json
// @Param id path int true "Budget ID"
// @Param budget body BudgetDTO true "Budget"
// @Success 200 {object} BudgetDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 403 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Failure 409 {object} rest.ErrorResponse
// @Router /api/budgets/{id} [put]
// @Security Bearer
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating budget")

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteBadRequest(w, "Invalid budget id", err.Error())
		return
	}
	var dto BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteBadRequest(w, "Invalid request body format", err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), id, DTOToBudget(dto))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, budgetToDTO(updated))
}

// Delete godoc
// @Summary Delete a budget
// @Tags Budget
// @Param id path int true "Budget ID"
// @Success 204 "No Content"
// @Failure 403 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/budgets/{id} [delete]
// @Security Bearer
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteBadRequest(w, "Invalid budget id", err.Error())
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		rest.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CurrentUtilization godoc
// @Summary Utilization of every budget in its current period
// @Description Returns JSON, or CSV when the Accept header is text/csv.
// @Tags Budget
// @Produce json
// @Produce text/csv
// @Success 200 {array} InstanceDTO
// @Router /api/budgets/current [get]
// @Security Bearer
func (h *Handler) CurrentUtilization(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting current budget utilization")

	instances, err := h.service.CurrentUtilization(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		rendered, err := h.renderer.RenderUtilization(instances)
		if err != nil {
			rest.WriteError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(rendered)); err != nil {
			log.Errorf("failed to write csv response: %v", err)
		}
		return
	}

	dtos := make([]InstanceDTO, 0, len(instances))
	for _, instance := range instances {
		dtos = append(dtos, instanceToDTO(instance))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func DTOToBudget(dto BudgetDTO) Budget {
	return Budget{
		Id:        dto.Id,
		Type:      Type(dto.Type),
		Category:  category.Category(dto.Category),
		Amount:    dto.Amount,
		Timeframe: period.Timeframe(dto.Timeframe),
	}
}

func budgetToDTO(b Budget) BudgetDTO {
	return BudgetDTO{
		Id:        b.Id,
		Type:      string(b.Type),
		Category:  string(b.Category),
		Amount:    b.Amount,
		Timeframe: string(b.Timeframe),
	}
}

func instanceToDTO(instance Instance) InstanceDTO {
	return InstanceDTO{
		Budget:      budgetToDTO(instance.Budget),
		PeriodStart: instance.PeriodStart.Format(period.DateLayout),
		PeriodEnd:   instance.PeriodEnd.Format(period.DateLayout),
		Expenditure: instance.Expenditure,
		Utilization: json.Number(instance.Utilization.StringFixed(4)),
	}
}
