// SPDX-License-Identifier: MIT

package httpapi

import (
	"errors"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/katalvlaran/dynhung/hungarian"
	"github.com/katalvlaran/dynhung/internal/session"
)

type problemAPI struct {
	registry  *session.Registry
	log       *zap.Logger
	validator *validator.Validate
	trans     ut.Translator
	maxBody   int64
}

func newProblemAPI(registry *session.Registry, log *zap.Logger, maxBody int64) *problemAPI {
	validate, trans := newValidator()

	return &problemAPI{
		registry:  registry,
		log:       log,
		validator: validate,
		trans:     trans,
		maxBody:   maxBody,
	}
}

func (api *problemAPI) Routes(group *routeGroup) {
	group.POST("/problems", api.createProblem)
	group.GET("/problems/:id", api.getProblem)
	group.PUT("/problems/:id/rows", api.updateRows)
	group.PUT("/problems/:id/cols", api.updateCols)
	group.DELETE("/problems/:id", api.deleteProblem)
}

func (api *problemAPI) createProblem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var request createProblemRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if !api.validate(w, r, request) {
		return
	}

	flat, err := request.flatten()
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	snap, err := api.registry.Create(flat)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", "/api/problems/"+snap.ID.String())
	if err := api.writeJSON(w, http.StatusCreated, envelope{"data": newProblemResponse(snap)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *problemAPI) getProblem(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	id, ok := api.problemID(w, r, p)
	if !ok {
		return
	}
	snap, err := api.registry.Get(id)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": newProblemResponse(snap)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *problemAPI) updateRows(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	api.update(w, r, p, hungarian.AxisRow)
}

func (api *problemAPI) updateCols(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	api.update(w, r, p, hungarian.AxisCol)
}

func (api *problemAPI) update(w http.ResponseWriter, r *http.Request, p httprouter.Params, axis hungarian.Axis) {
	id, ok := api.problemID(w, r, p)
	if !ok {
		return
	}
	var request updateRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if !api.validate(w, r, request) {
		return
	}

	flat, err := request.flatten()
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	snap, err := api.registry.Update(id, axis, flat, request.Changed)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": newProblemResponse(snap)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *problemAPI) deleteProblem(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	id, ok := api.problemID(w, r, p)
	if !ok {
		return
	}
	if err := api.registry.Delete(id); err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *problemAPI) problemID(w http.ResponseWriter, r *http.Request, p httprouter.Params) (uuid.UUID, bool) {
	id, err := uuid.Parse(p.ByName("id"))
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("id must be a valid UUID"))
		return uuid.Nil, false
	}

	return id, true
}
