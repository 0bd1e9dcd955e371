// SPDX-License-Identifier: MIT

package httpapi

import (
	"time"

	"github.com/katalvlaran/dynhung/internal/session"
)

// costPayload carries a cost matrix either as rows or as a row-major slice.
type costPayload struct {
	Cost [][]float64 `json:"cost" validate:"required_without=Flat,excluded_with=Flat"`
	Flat []float64   `json:"flat" validate:"required_without=Cost"`
}

type createProblemRequest struct {
	costPayload
}

type updateRequest struct {
	costPayload
	Changed []int `json:"changed"`
}

type problemResponse struct {
	ID         string    `json:"id"`
	N          int       `json:"n"`
	Assignment []int     `json:"assignment"`
	Cost       float64   `json:"cost"`
	RowDuals   []float64 `json:"row_duals"`
	ColDuals   []float64 `json:"col_duals"`
	Iterations int       `json:"iterations"`
	CreatedAt  time.Time `json:"created_at"`
}

func newProblemResponse(s session.Snapshot) problemResponse {
	return problemResponse{
		ID:         s.ID.String(),
		N:          s.N,
		Assignment: s.Assignment,
		Cost:       s.Cost,
		RowDuals:   s.RowDuals,
		ColDuals:   s.ColDuals,
		Iterations: s.Iterations,
		CreatedAt:  s.Created,
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
