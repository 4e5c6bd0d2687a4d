package attendance

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/staffbridge/valimq"
	"github.com/staffbridge/valimq/internal/jsonweb"
)

// Handler serves the attendance API. Create blocks on the broker-backed
// validator for up to its reply budget, so a slow broker throttles this
// endpoint one for one; that trade is deliberate.
type Handler struct {
	store     Store
	validator valimq.Validator
	logger    *zap.SugaredLogger
}

func NewHandler(store Store, validator valimq.Validator, logger *zap.SugaredLogger) *Handler {
	return &Handler{store: store, validator: validator, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
	})
}

type createRecordRequest struct {
	EmployeeID int64  `json:"employee_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Type       string `json:"type"`
}

func (req *createRecordRequest) toRecord() (*Record, error) {
	if req.EmployeeID <= 0 {
		return nil, errors.New("employee_id must be a positive integer")
	}
	if req.Type != TypeEntry && req.Type != TypeExit {
		return nil, errors.New("type must be entry or exit")
	}

	now := time.Now().UTC()
	rec := &Record{
		EmployeeID: req.EmployeeID,
		Date:       now.Format("2006-01-02"),
		Time:       now.Format("15:04:05"),
		Type:       req.Type,
		CreatedAt:  now,
	}
	if req.Date != "" {
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			return nil, errors.New("date must be YYYY-MM-DD")
		}
		rec.Date = req.Date
	}
	if req.Time != "" {
		if _, err := time.Parse("15:04:05", req.Time); err != nil {
			return nil, errors.New("time must be HH:MM:SS")
		}
		rec.Time = req.Time
	}
	return rec, nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := jsonweb.Read(r, &req); err != nil {
		jsonweb.WriteValidationError(w, err)
		return
	}

	rec, err := req.toRecord()
	if err != nil {
		jsonweb.WriteValidationError(w, err)
		return
	}

	// Fail closed: timeouts and broker outages look exactly like an unknown
	// employee here. The response stays generic so no broker detail leaks.
	if !h.validator.Validate(r.Context(), rec.EmployeeID) {
		jsonweb.WriteError(w, http.StatusBadRequest, "Empleado no válido o no existe")
		return
	}

	if err := h.store.Create(r.Context(), rec); err != nil {
		h.logger.Errorw("create attendance record", "employee_id", rec.EmployeeID, "error", err)
		jsonweb.WriteInternalError(w)
		return
	}

	jsonweb.Write(w, http.StatusCreated, rec)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Errorw("list attendance records", "error", err)
		jsonweb.WriteInternalError(w)
		return
	}
	if list == nil {
		list = []Record{}
	}
	jsonweb.Write(w, http.StatusOK, list)
}
