package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"finboard/internal/core"
	applog "finboard/internal/log"
)

// JSONResponseBuilder gives handlers one fluent way to write a status,
// headers and a JSON body.
type JSONResponseBuilder struct {
	statusCode int
	headers    map[string]string
	payload    any
}

func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

func (b *JSONResponseBuilder) Header(name, value string) *JSONResponseBuilder {
	b.headers[name] = value
	return b
}

func (b *JSONResponseBuilder) Data(v any) *JSONResponseBuilder {
	b.payload = v
	return b
}

// Error sets an {"error": message} body.
func (b *JSONResponseBuilder) Error(message string) *JSONResponseBuilder {
	b.payload = errorBody{Error: message}
	return b
}

// FieldError sets an {"error": message, "field": field} body.
func (b *JSONResponseBuilder) FieldError(field, message string) *JSONResponseBuilder {
	b.payload = errorBody{Error: message, Field: field}
	return b
}

func (b *JSONResponseBuilder) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	if b.statusCode == http.StatusNoContent {
		w.WriteHeader(b.statusCode)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(b.statusCode)
	if b.payload != nil {
		_ = json.NewEncoder(w).Encode(b.payload)
	}
}

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// ErrorResponse maps domain errors to status codes: validation 422, unknown
// id 404, anything else 500 with the detail kept out of the body.
func ErrorResponse(err error) *JSONResponseBuilder {
	var ve *core.ValidationError
	if errors.As(err, &ve) {
		return UnprocessableEntityError(ve.Field, ve.Err.Error())
	}
	var nf *core.NotFoundError
	if errors.As(err, &nf) {
		return NotFoundError(nf.Error())
	}
	return InternalServerError("internal error")
}

func BadRequestError(message string) *JSONResponseBuilder {
	return NewJSONResponse().Status(http.StatusBadRequest).Error(message)
}

func UnprocessableEntityError(field, message string) *JSONResponseBuilder {
	return NewJSONResponse().Status(http.StatusUnprocessableEntity).FieldError(field, message)
}

func NotFoundError(message string) *JSONResponseBuilder {
	return NewJSONResponse().Status(http.StatusNotFound).Error(message)
}

func InternalServerError(message string) *JSONResponseBuilder {
	return NewJSONResponse().Status(http.StatusInternalServerError).Error(message)
}

// writeError logs err at a level matching its class and writes the mapped
// response.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logger := applog.FromContext(r.Context())
	fields := applog.NewFields().WithOperation(op)
	switch {
	case core.IsValidation(err):
		logger.DebugContext(r.Context(), "Rejected invalid input", fields.WithError(err, applog.ErrorTypeValidation).ToSlice()...)
	case core.IsNotFound(err):
		logger.DebugContext(r.Context(), "Unknown resource", fields.WithError(err, applog.ErrorTypeNotFound).ToSlice()...)
	default:
		logger.ErrorContext(r.Context(), "Request failed", fields.WithError(err, applog.ErrorTypeInternal).ToSlice()...)
	}
	ErrorResponse(err).Write(w)
}
