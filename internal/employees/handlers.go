package employees

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/staffbridge/valimq/internal/jsonweb"
)

type Handler struct {
	store  Store
	logger *zap.SugaredLogger
}

func NewHandler(store Store, logger *zap.SugaredLogger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

type createEmployeeRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phone_number"`
	Position    string  `json:"position"`
	Salary      float64 `json:"salary"`
	HireDate    string  `json:"hire_date"`
}

func (req *createEmployeeRequest) toEmployee() (*Employee, error) {
	if !strings.Contains(req.Email, "@") {
		return nil, errors.New("a valid email is required")
	}
	if req.Salary < 0 {
		return nil, errors.New("salary must not be negative")
	}

	e := &Employee{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Position:    req.Position,
		Salary:      req.Salary,
		HireDate:    time.Now().UTC(),
	}
	if e.FirstName == "" {
		e.FirstName = "Unknown"
	}
	if e.LastName == "" {
		e.LastName = "Unknown"
	}
	if e.Position == "" {
		e.Position = "Employee"
	}
	if req.HireDate != "" {
		d, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			return nil, errors.New("hire_date must be YYYY-MM-DD")
		}
		e.HireDate = d
	}
	return e, nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := jsonweb.Read(r, &req); err != nil {
		jsonweb.WriteValidationError(w, err)
		return
	}

	e, err := req.toEmployee()
	if err != nil {
		jsonweb.WriteValidationError(w, err)
		return
	}

	if err := h.store.Create(r.Context(), e); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			jsonweb.WriteError(w, http.StatusConflict, "email already registered")
			return
		}
		h.logger.Errorw("create employee", "error", err)
		jsonweb.WriteInternalError(w)
		return
	}

	jsonweb.Write(w, http.StatusCreated, e)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Errorw("list employees", "error", err)
		jsonweb.WriteInternalError(w)
		return
	}
	jsonweb.Write(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		jsonweb.WriteValidationError(w, err)
		return
	}

	e, err := h.store.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		jsonweb.WriteError(w, http.StatusNotFound, "employee not found")
		return
	}
	if err != nil {
		h.logger.Errorw("get employee", "id", id, "error", err)
		jsonweb.WriteInternalError(w)
		return
	}
	jsonweb.Write(w, http.StatusOK, e)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		jsonweb.WriteValidationError(w, err)
		return
	}

	var req createEmployeeRequest
	if err := jsonweb.Read(r, &req); err != nil {
		jsonweb.WriteValidationError(w, err)
		return
	}

	e, err := req.toEmployee()
	if err != nil {
		jsonweb.WriteValidationError(w, err)
		return
	}
	e.ID = id

	err = h.store.Update(r.Context(), e)
	if errors.Is(err, ErrNotFound) {
		jsonweb.WriteError(w, http.StatusNotFound, "employee not found")
		return
	}
	if errors.Is(err, ErrDuplicateEmail) {
		jsonweb.WriteError(w, http.StatusConflict, "email already registered")
		return
	}
	if err != nil {
		h.logger.Errorw("update employee", "id", id, "error", err)
		jsonweb.WriteInternalError(w)
		return
	}
	jsonweb.Write(w, http.StatusOK, e)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		jsonweb.WriteValidationError(w, err)
		return
	}

	err = h.store.Delete(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		jsonweb.WriteError(w, http.StatusNotFound, "employee not found")
		return
	}
	if err != nil {
		h.logger.Errorw("delete employee", "id", id, "error", err)
		jsonweb.WriteInternalError(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return id, nil
}
