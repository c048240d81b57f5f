package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driving"
)

// maxUploadSize caps uploaded images at 5 MB
const maxUploadSize = 5 << 20

// maxMultipartMemory is the in-memory buffer for multipart parsing
const maxMultipartMemory = 8 << 20

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// MessageResponse represents a confirmation message response
// @Description Confirmation message response
type MessageResponse struct {
	Message string `json:"message" example:"product deleted"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks the database connection)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleSignup godoc
// @Summary      Create account
// @Description  Register a new account. Signup does not authenticate: log in afterwards to obtain a token.
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      driving.SignupRequest  true  "Account details"
// @Success      201      {object}  MessageResponse
// @Failure      400      {object}  ErrorResponse  "Missing field"
// @Failure      409      {object}  ErrorResponse  "Email already registered"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/signup [post]
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req driving.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := s.authService.Signup(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "name, email, and password are required")
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "an account with this email already exists")
		default:
			writeError(w, http.StatusInternalServerError, "signup failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "signup successful, you can now log in"})
}

// handleLogin godoc
// @Summary      User login
// @Description  Authenticate with email and password to receive a JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Authenticate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "email and password are required")
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid email or password")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleUpdateProfile godoc
// @Summary      Update profile
// @Description  Update the authenticated user's name and email, and optionally the password
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.UpdateProfileRequest  true  "Profile fields"
// @Success      200      {object}  map[string]domain.UserSummary
// @Failure      400      {object}  ErrorResponse  "Missing name or email"
// @Failure      404      {object}  ErrorResponse  "User not found"
// @Failure      409      {object}  ErrorResponse  "Email already in use"
// @Router       /auth/edit [put]
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req driving.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.authService.UpdateProfile(r.Context(), authCtx.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "name and email are required")
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "email already in use")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		default:
			writeError(w, http.StatusInternalServerError, "profile update failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]*domain.UserSummary{"user": user})
}

// Product endpoints

// handleListProducts godoc
// @Summary      List products
// @Description  Returns all products
// @Tags         Products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]domain.Product
// @Router       /products [get]
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.productService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}

	// Always an array, never null
	if products == nil {
		products = []*domain.Product{}
	}

	writeJSON(w, http.StatusOK, map[string][]*domain.Product{"products": products})
}

// handleCreateProduct godoc
// @Summary      Create product
// @Description  Create a product from multipart form fields title, description, price, and an image file
// @Tags         Products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  map[string]domain.Product
// @Failure      400  {object}  ErrorResponse  "Missing field or invalid image"
// @Failure      500  {object}  ErrorResponse  "Relay or store failure"
// @Router       /products [post]
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")
	priceRaw := r.FormValue("price")

	image, err := readUploadedFile(r, "image")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if title == "" || description == "" || priceRaw == "" || image == nil {
		writeError(w, http.StatusBadRequest, "all fields and an image are required")
		return
	}

	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "price must be a number")
		return
	}

	product, err := s.productService.Create(r.Context(), driving.CreateProductRequest{
		Title:       title,
		Description: description,
		Price:       price,
		Image:       image,
	})
	if err != nil {
		s.writeProductError(w, err, "an error occurred while creating the product")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]*domain.Product{"product": product})
}

// handleUpdateProduct godoc
// @Summary      Update product
// @Description  Apply a partial update from multipart form fields; a supplied image file replaces the stored one
// @Tags         Products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Product ID"
// @Success      200  {object}  map[string]domain.Product
// @Failure      400  {object}  ErrorResponse  "Validation failure"
// @Failure      404  {object}  ErrorResponse  "Product not found"
// @Router       /products/{id} [put]
func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := driving.UpdateProductRequest{
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
	}

	if raw := formValue(r, "price"); raw != nil {
		price, err := strconv.ParseFloat(*raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "price must be a number")
			return
		}
		req.Price = &price
	}

	image, err := readUploadedFile(r, "image")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Image = image

	product, err := s.productService.Update(r.Context(), id, req)
	if err != nil {
		s.writeProductError(w, err, "an error occurred while updating the product")
		return
	}

	writeJSON(w, http.StatusOK, map[string]*domain.Product{"product": product})
}

// handleDeleteProduct godoc
// @Summary      Delete product
// @Description  Remove a product by ID
// @Tags         Products
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Product ID"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse  "Product not found"
// @Router       /products/{id} [delete]
func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.productService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "an error occurred while deleting the product")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// writeProductError maps product service errors to HTTP responses.
// Upstream detail stays in server logs: clients get the generic message.
func (s *Server) writeProductError(w http.ResponseWriter, err error, generic string) {
	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "all fields and an image are required")
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Error())
	default:
		writeError(w, http.StatusInternalServerError, generic)
	}
}

// readUploadedFile extracts a multipart file into a pre-validated
// domain.UploadedFile, enforcing the size limit and image content type.
// Returns http.ErrMissingFile when the field is absent.
func readUploadedFile(r *http.Request, field string) (*domain.UploadedFile, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		return nil, errors.New("image exceeds the 5 MB limit")
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, errors.New("only image uploads are allowed")
	}

	// The declared header size is not trusted: cap the actual read too.
	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return nil, errors.New("failed to read uploaded image")
	}
	if int64(len(data)) > maxUploadSize {
		return nil, errors.New("image exceeds the 5 MB limit")
	}

	return &domain.UploadedFile{
		Name:        header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// formValue returns a pointer to the form field value when the field was
// present in the multipart body, nil otherwise.
func formValue(r *http.Request, field string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
