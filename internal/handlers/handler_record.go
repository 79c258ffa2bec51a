package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/SscSPs/moneyfield/internal/apperrors"
	"github.com/SscSPs/moneyfield/internal/core/domain"
	portssvc "github.com/SscSPs/moneyfield/internal/core/ports/services"
	"github.com/SscSPs/moneyfield/internal/dto"
	"github.com/SscSPs/moneyfield/internal/middleware"
	"github.com/SscSPs/moneyfield/pkg/moneyfield"
	"github.com/gin-gonic/gin"
)

// Query parameters of the list endpoint that are not column filters.
const (
	queryLimit     = "limit"
	queryPageToken = "page_token"
)

// recordHandler handles HTTP requests related to records.
type recordHandler struct {
	recordService portssvc.RecordSvcFacade
}

// newRecordHandler creates a new recordHandler.
func newRecordHandler(rs portssvc.RecordSvcFacade) *recordHandler {
	return &recordHandler{
		recordService: rs,
	}
}

// RegisterRecordRoutes registers routes related to records. Writes go through
// the auth handler.
func RegisterRecordRoutes(rg *gin.RouterGroup, recordService portssvc.RecordSvcFacade, auth gin.HandlerFunc) {
	h := newRecordHandler(recordService)

	rg.GET("/records", h.listKinds)
	records := rg.Group("/records/:kind")
	{
		records.GET("", h.listRecords)
		records.POST("", auth, h.createRecord)
		records.GET("/form", h.getForm)
		records.GET("/:id", h.getRecord)
		records.PUT("/:id", auth, h.updateRecord)
		records.GET("/:id/form", h.getForm)
	}
}

// listKinds godoc
// @Summary List record kinds
// @Description Lists the record kinds that carry money fields
// @Tags records
// @Produce  json
// @Success 200 {object} dto.KindsResponse
// @Router /records [get]
func (h *recordHandler) listKinds(c *gin.Context) {
	c.JSON(http.StatusOK, dto.KindsResponse{Kinds: h.recordService.Kinds(c.Request.Context())})
}

// createRecord godoc
// @Summary Create a record
// @Description Cleans submitted form data (price_0/price_1 or a composed price such as "EUR 9.99") into a new record
// @Tags records
// @Accept  x-www-form-urlencoded
// @Accept  json
// @Produce  json
// @Param   kind path string true "Record kind"
// @Success 201 {object} dto.RecordResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Unknown kind"
// @Failure 409 {object} dto.ErrorResponse "Record already exists"
// @Failure 500 {object} dto.ErrorResponse "Failed to create record"
// @Security BearerAuth
// @Router /records/{kind} [post]
func (h *recordHandler) createRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kind := c.Param("kind")

	data, err := bindFormData(c)
	if err != nil {
		logger.Warn("Failed to bind form data for CreateRecord", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("kind", kind))
	logger.Info("Received request to create record")

	rec, err := h.recordService.CreateRecord(c.Request.Context(), kind, data, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create record")
		return
	}

	logger.Info("Record created successfully", slog.String("record_id", rec.ID()))
	c.JSON(http.StatusCreated, dto.ToRecordResponse(kind, rec))
}

// updateRecord godoc
// @Summary Update a record
// @Description Cleans submitted form data into an existing record
// @Tags records
// @Accept  x-www-form-urlencoded
// @Accept  json
// @Produce  json
// @Param   kind path string true "Record kind"
// @Param   id path string true "Record ID"
// @Success 200 {object} dto.RecordResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update record"
// @Security BearerAuth
// @Router /records/{kind}/{id} [put]
func (h *recordHandler) updateRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kind, id := c.Param("kind"), c.Param("id")

	data, err := bindFormData(c)
	if err != nil {
		logger.Warn("Failed to bind form data for UpdateRecord", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("kind", kind), slog.String("record_id", id))
	logger.Info("Received request to update record")

	rec, err := h.recordService.UpdateRecord(c.Request.Context(), kind, id, data, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update record")
		return
	}

	logger.Info("Record updated successfully")
	c.JSON(http.StatusOK, dto.ToRecordResponse(kind, rec))
}

// getRecord godoc
// @Summary Get a record
// @Description Retrieves one record with its raw columns and composed money values
// @Tags records
// @Produce  json
// @Param   kind path string true "Record kind"
// @Param   id path string true "Record ID"
// @Success 200 {object} dto.RecordResponse
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve record"
// @Router /records/{kind}/{id} [get]
func (h *recordHandler) getRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kind, id := c.Param("kind"), c.Param("id")

	logger = logger.With(slog.String("kind", kind), slog.String("record_id", id))
	logger.Info("Received request to get record")

	rec, err := h.recordService.GetRecord(c.Request.Context(), kind, id)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve record")
		return
	}

	c.JSON(http.StatusOK, dto.ToRecordResponse(kind, rec))
}

// listRecords godoc
// @Summary List records
// @Description Lists records page by page. Any other query parameter is an equality filter on a column; money fields are filtered through their sub-columns (price_amount, price_currency). Filtered results are not paged, so filters cannot be combined with limit or page_token.
// @Tags records
// @Produce  json
// @Param   kind path string true "Record kind"
// @Param   limit query int false "Page size" default(20)
// @Param   page_token query string false "Token of the next page"
// @Success 200 {object} dto.ListRecordsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filter or page token"
// @Failure 404 {object} dto.ErrorResponse "Unknown kind"
// @Failure 500 {object} dto.ErrorResponse "Failed to list records"
// @Router /records/{kind} [get]
func (h *recordHandler) listRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kind := c.Param("kind")
	logger = logger.With(slog.String("kind", kind))

	query := c.Request.URL.Query()
	params := domain.ListRecordsParams{}
	if raw := query.Get(queryLimit); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		params.Limit = limit
	}
	if token := query.Get(queryPageToken); token != "" {
		params.NextToken = &token
	}

	filters := map[string]any{}
	for name := range query {
		if name == queryLimit || name == queryPageToken {
			continue
		}
		filters[name] = query.Get(name)
	}

	if len(filters) > 0 {
		if query.Has(queryLimit) || query.Has(queryPageToken) {
			logger.Warn("Paging parameters sent with column filters")
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "limit and page_token cannot be combined with column filters"})
			return
		}
		logger.Info("Received request to filter records", slog.Int("filters", len(filters)))
		records, err := h.recordService.FilterRecords(c.Request.Context(), kind, filters)
		if err != nil {
			respondError(c, logger, err, "Failed to filter records")
			return
		}
		c.JSON(http.StatusOK, dto.ListRecordsResponse{Records: dto.ToRecordResponseList(kind, records)})
		return
	}

	logger.Info("Received request to list records", slog.Int("limit", params.Limit))
	page, err := h.recordService.ListRecords(c.Request.Context(), kind, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list records")
		return
	}

	logger.Info("Records listed successfully", slog.Int("count", len(page.Records)))
	c.JSON(http.StatusOK, dto.ToListRecordsResponse(kind, page))
}

// getForm godoc
// @Summary Get a record form
// @Description Describes the model form of a kind with the raw values to display: blank, or filled from a record
// @Tags records
// @Produce  json
// @Param   kind path string true "Record kind"
// @Param   id path string false "Record ID"
// @Success 200 {object} dto.FormResponse
// @Failure 400 {object} dto.ErrorResponse "Record cannot be displayed"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to build form"
// @Router /records/{kind}/form [get]
// @Router /records/{kind}/{id}/form [get]
func (h *recordHandler) getForm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kind, id := c.Param("kind"), c.Param("id")
	logger = logger.With(slog.String("kind", kind), slog.String("record_id", id))

	form, err := h.recordService.GetForm(c.Request.Context(), kind, id)
	if err != nil {
		respondError(c, logger, err, "Failed to build form")
		return
	}

	c.JSON(http.StatusOK, dto.ToFormResponse(form))
}

// bindFormData reads a form-encoded body, or a JSON object of strings.
func bindFormData(c *gin.Context) (url.Values, error) {
	if c.ContentType() == gin.MIMEJSON {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, err
		}
		data := url.Values{}
		for k, v := range body {
			data.Set(k, v)
		}
		return data, nil
	}
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	return c.Request.PostForm, nil
}

// respondError maps service errors to HTTP responses.
func respondError(c *gin.Context, logger *slog.Logger, err error, msg string) {
	var verr *moneyfield.ValidationError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		res := dto.ErrorResponse{Error: "Validation failed"}
		if errors.As(err, &verr) {
			res.Details = verr.Errors
		} else {
			res.Error = err.Error()
		}
		c.JSON(http.StatusBadRequest, res)
	case errors.Is(err, apperrors.ErrFieldError):
		logger.Warn("Field error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate record", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "Record already exists"})
	default:
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msg})
	}
}
