package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"finboard/internal/core"
)

var errBodyTooLarge = errors.New("request body too large")

// RequestBodyParser reads a JSON object or form-encoded body once and
// exposes its fields as trimmed strings.
type RequestBodyParser struct {
	body     []byte
	jsonData map[string]any
	formData url.Values
	parsed   bool
	err      error
}

func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{}
	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if p.err == nil && len(p.body) > maxBodyBytes {
		p.err = errBodyTooLarge
	}
	return p
}

func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true
	if p.err != nil {
		return p.err
	}

	trimmed := strings.TrimSpace(string(p.body))
	switch {
	case trimmed == "":
		p.formData = url.Values{}
	case trimmed[0] == '{':
		p.err = p.decodeJSON(trimmed)
	default:
		p.formData, p.err = url.ParseQuery(trimmed)
	}
	return p.err
}

// decodeJSON keeps numbers as json.Number so amounts reach decimal parsing
// with every digit the client sent.
func (p *RequestBodyParser) decodeJSON(body string) error {
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&p.jsonData); err != nil {
		p.jsonData = nil
		return fmt.Errorf("malformed JSON body: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		p.jsonData = nil
		return errors.New("malformed JSON body: trailing data after object")
	}
	return nil
}

// Get returns the named field as its literal text.
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if v, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(v))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// parsePeriod reads ?period=N, defaulting to def. Values must be in
// [1, max].
func parsePeriod(query url.Values, def, max int) (int, error) {
	v := strings.TrimSpace(query.Get("period"))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > max {
		return 0, &core.ValidationError{Field: "period", Err: fmt.Errorf("%w (1-%d)", core.ErrInvalidPeriod, max)}
	}
	return n, nil
}

// parseLimit reads ?limit=N; absent means no limit.
func parseLimit(query url.Values) (int, error) {
	v := strings.TrimSpace(query.Get("limit"))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, &core.ValidationError{Field: "limit", Err: errors.New("limit must be a non-negative integer")}
	}
	return n, nil
}

// parseAmountField parses a required positive amount, tagging failures with
// field.
func parseAmountField(p *RequestBodyParser, field string) (decimal.Decimal, error) {
	d, err := core.ParseAmount(p.Get(field))
	if err != nil {
		return decimal.Zero, &core.ValidationError{Field: field, Err: err}
	}
	return d, nil
}
