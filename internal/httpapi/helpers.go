// SPDX-License-Identifier: MIT

package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"go.uber.org/zap"

	"github.com/katalvlaran/dynhung/internal/session"
	"github.com/katalvlaran/dynhung/matrix"
)

type envelope map[string]any

func (api *problemAPI) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)

	return err
}

// readJSON decodes a single JSON value from the request body into dst.
func (api *problemAPI) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, api.maxBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesErr.Limit)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		}
		return fmt.Errorf("body contains badly-formed JSON: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

// newValidator returns a validator whose errors translate to English.
func newValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return validate, trans
}

func translateError(err error, trans ut.Translator) []error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []error{err}
	}
	errs := make([]error, 0, len(validationErrors))
	for _, e := range validationErrors {
		errs = append(errs, errors.New(e.Translate(trans)))
	}

	return errs
}

// validate runs struct validation and writes a 400 on failure.
func (api *problemAPI) validate(w http.ResponseWriter, r *http.Request, request any) bool {
	if err := api.validator.Struct(request); err != nil {
		vv := translateError(err, api.trans)
		msgs := make([]string, 0, len(vv))
		for _, v := range vv {
			msgs = append(msgs, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %s", strings.Join(msgs, "; ")))
		return false
	}

	return true
}

func (api *problemAPI) logError(r *http.Request, err error) {
	api.log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("uri", r.URL.RequestURI()),
		zap.Error(err),
	)
}

func (api *problemAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	body := envelope{"error": errorResponse{Code: code, Message: message}}
	if err := api.writeJSON(w, status, body, nil); err != nil {
		api.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// BadRequestResponse writes a 400 for malformed or invalid requests.
func (api *problemAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, "bad_request", err.Error())
}

// NotFoundResponse writes a 404.
func (api *problemAPI) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusNotFound, "not_found", err.Error())
}

// ServerErrorResponse logs err and writes a generic 500.
func (api *problemAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.logError(r, err)
	api.errorResponse(w, r, http.StatusInternalServerError, "internal",
		"the server encountered a problem and could not process your request")
}

// getStatusCode maps a solver or registry error to a response.
func (api *problemAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	switch kind := session.Kind(err); kind {
	case "shape", "index", "value", "too_large":
		api.errorResponse(w, r, http.StatusUnprocessableEntity, kind, err.Error())
	case "not_found":
		api.NotFoundResponse(w, r, err)
	default:
		api.ServerErrorResponse(w, r, err)
	}
}

// flatten turns a validated payload into a row-major slice.
func (p costPayload) flatten() ([]float64, error) {
	if p.Flat != nil {
		return p.Flat, nil
	}
	m, err := matrix.NewFromRows(p.Cost)
	if err != nil {
		return nil, err
	}
	if err = matrix.ValidateSquare(m); err != nil {
		return nil, err
	}

	return m.Flat(), nil
}
