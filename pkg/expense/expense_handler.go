package expense

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/budgetly/budgetly/internal/rest"
	"github.com/budgetly/budgetly/pkg/category"
	"github.com/budgetly/budgetly/pkg/money"
	"github.com/budgetly/budgetly/pkg/period"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ExpenseDTO struct {
	Id          int         `json:"id"`
	Date        string      `json:"date"`
	Amount      money.Money `json:"amount"`
	Category    string      `json:"category"`
	Description string      `json:"description,omitempty"`
}

type ListingDTO struct {
	TotalAmount money.Money  `json:"totalAmount"`
	Expenses    []ExpenseDTO `json:"expenses"`
	StartDate   string       `json:"startDate"`
	EndDate     string       `json:"endDate"`
	Categories  []string     `json:"categories"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// List godoc
// @Summary List expenses with their total
// @Description Expenses of the current user between startDate and endDate (inclusive, defaults to the current month),
// @Description optionally restricted to categories, most recent first.
// @Tags Expense
// @Produce json
// @Param startDate query string false "Start date (YYYY-MM-DD), required with endDate"
// @Param endDate query string false "End date (YYYY-MM-DD), required with startDate"
// @Param categories query []string false "Categories, repeated or comma separated"
// @Success 200 {object} ListingDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/expenses [get]
// @Security Bearer
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing expenses")
	params := r.URL.Query()

	var query ListQuery
	if params.Has("startDate") {
		startDate, err := period.ParseDate(params.Get("startDate"))
		if err != nil {
			rest.WriteBadRequest(w, "Invalid startDate format", "Expected format: YYYY-MM-DD")
			return
		}
		query.StartDate = &startDate
	}
	if params.Has("endDate") {
		endDate, err := period.ParseDate(params.Get("endDate"))
		if err != nil {
			rest.WriteBadRequest(w, "Invalid endDate format", "Expected format: YYYY-MM-DD")
			return
		}
		query.EndDate = &endDate
	}
	query.Categories = parseCategories(params["categories"])

	listing, err := h.service.List(r.Context(), query)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, listingToDTO(listing))
}

// Create godoc
// @Summary Record an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param expense body ExpenseDTO true "Expense"
// @Success 201 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/expenses [post]
// @Security Bearer
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating expense")

	expense, ok := decodeExpense(w, r)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), expense)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, expenseToDTO(created))
}

// Update godoc
// @Summary Replace an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param expense body ExpenseDTO true "Expense"
// @Success 200 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 403 {object} rest.ErrorResponse "Expense owned by another user"
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/expenses/{id} [put]
// @Security Bearer
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating expense")

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteBadRequest(w, "Invalid expense id", err.Error())
		return
	}
	expense, ok := decodeExpense(w, r)
	if !ok {
		return
	}

	updated, err := h.service.Update(r.Context(), id, expense)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, expenseToDTO(updated))
}

// Delete godoc
// @Summary Delete an expense
// @Tags Expense
// @Param id path int true "Expense ID"
// @Success 204 "No Content"
// @Failure 403 {object} rest.ErrorResponse "Expense owned by another user"
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/expenses/{id} [delete]
// @Security Bearer
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting expense")

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteBadRequest(w, "Invalid expense id", err.Error())
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		rest.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCategories godoc
// @Summary List expense categories
// @Tags Expense
// @Produce json
// @Success 200 {array} string
// @Router /api/categories [get]
// @Security Bearer
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, categoriesToStrings(category.All()))
}

func decodeExpense(w http.ResponseWriter, r *http.Request) (Expense, bool) {
	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteBadRequest(w, "Invalid request body format", err.Error())
		return Expense{}, false
	}
	expense, err := DTOToExpense(dto)
	if err != nil {
		rest.WriteBadRequest(w, "Invalid date format", "Expected format: YYYY-MM-DD")
		return Expense{}, false
	}
	return expense, true
}

// parseCategories accepts ?categories=a&categories=b as well as ?categories=a,b.
func parseCategories(values []string) []category.Category {
	var categories []category.Category
	for _, value := range values {
		for _, name := range strings.Split(value, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				categories = append(categories, category.Category(name))
			}
		}
	}
	return categories
}

func categoriesToStrings(categories []category.Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, string(c))
	}
	return names
}

func DTOToExpense(dto ExpenseDTO) (Expense, error) {
	var date time.Time
	if dto.Date != "" {
		parsed, err := period.ParseDate(dto.Date)
		if err != nil {
			return Expense{}, err
		}
		date = parsed
	}
	return Expense{
		Id:          dto.Id,
		Date:        date,
		Amount:      dto.Amount,
		Category:    category.Category(dto.Category),
		Description: dto.Description,
	}, nil
}

func expenseToDTO(expense Expense) ExpenseDTO {
	return ExpenseDTO{
		Id:          expense.Id,
		Date:        expense.Date.Format(period.DateLayout),
		Amount:      expense.Amount,
		Category:    string(expense.Category),
		Description: expense.Description,
	}
}

func listingToDTO(listing Listing) ListingDTO {
	expenses := make([]ExpenseDTO, 0, len(listing.Expenses))
	for _, e := range listing.Expenses {
		expenses = append(expenses, expenseToDTO(e))
	}
	return ListingDTO{
		TotalAmount: listing.Total,
		Expenses:    expenses,
		StartDate:   listing.StartDate.Format(period.DateLayout),
		EndDate:     listing.EndDate.Format(period.DateLayout),
		Categories:  categoriesToStrings(listing.Categories),
	}
}
