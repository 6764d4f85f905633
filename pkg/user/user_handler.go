package user

import (
	"encoding/json"
	"net/http"

	"github.com/budgetly/budgetly/internal/rest"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Uid   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RegisterRequestDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponseDTO struct {
	Token string `json:"token"`
}

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{
		userService: userService,
	}
}

// Register godoc
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequestDTO true "Registration"
// @Success 200 {object} TokenResponseDTO
// @Failure 400 {object} rest.ErrorResponse "Blank fields or email already registered"
// @Router /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering user")

	var request RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		rest.WriteBadRequest(w, "Invalid request body format", err.Error())
		return
	}

	token, err := h.userService.Register(r.Context(), Registration{
		Name:     request.Name,
		Email:    request.Email,
		Password: request.Password,
	})
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, TokenResponseDTO{Token: token})
}

// SignIn godoc
// @Summary Sign in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body SignInRequestDTO true "Credentials"
// @Success 200 {object} TokenResponseDTO
// @Failure 401 {object} rest.ErrorResponse "Invalid credentials"
// @Failure 429 {object} rest.ErrorResponse "Too many attempts"
// @Router /api/auth/signin [post]
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	log.Debug("Signing in user")

	var request SignInRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		rest.WriteBadRequest(w, "Invalid request body format", err.Error())
		return
	}

	token, err := h.userService.SignIn(r.Context(), request.Email, request.Password)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, TokenResponseDTO{Token: token})
}

// CurrentUser godoc
// @Summary Get current user
// @Tags User
// @Produce json
// @Success 200 {object} UserDTO
// @Failure 401 {object} rest.ErrorResponse "Not signed in"
// @Router /api/user/current [get]
// @Security Bearer
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting current user")

	currentUser, err := h.userService.GetCurrentUser(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, userToDTO(currentUser))
}

func userToDTO(user User) UserDTO {
	return UserDTO{
		Uid:   user.Uid,
		Name:  user.Name,
		Email: user.Email,
	}
}
