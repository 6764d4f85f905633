package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints. Everything except sign up and sign in requires a bearer token.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {
	r.Use(requestLogging)

	// Authentication
	r.HandleFunc("/api/auth/register", deps.UserHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/signin", deps.UserHandler.SignIn).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(deps.Tokens, deps.UserService))

	// User
	api.HandleFunc("/user/current", deps.UserHandler.CurrentUser).Methods("GET")

	// Expenses
	api.HandleFunc("/categories", deps.ExpenseHandler.ListCategories).Methods("GET")
	api.HandleFunc("/expenses", deps.ExpenseHandler.List).Methods("GET")
	api.HandleFunc("/expenses", deps.ExpenseHandler.Create).Methods("POST")
	api.HandleFunc("/expenses/{id:[0-9]+}", deps.ExpenseHandler.Update).Methods("PUT")
	api.HandleFunc("/expenses/{id:[0-9]+}", deps.ExpenseHandler.Delete).Methods("DELETE")

	// Budgets
	api.HandleFunc("/budgets", deps.BudgetHandler.List).Methods("GET")
	api.HandleFunc("/budgets", deps.BudgetHandler.Create).Methods("POST")
	api.HandleFunc("/budgets/current", deps.BudgetHandler.CurrentUtilization).Methods("GET")
	api.HandleFunc("/budgets/{id:[0-9]+}", deps.BudgetHandler.Update).Methods("PUT")
	api.HandleFunc("/budgets/{id:[0-9]+}", deps.BudgetHandler.Delete).Methods("DELETE")
}
