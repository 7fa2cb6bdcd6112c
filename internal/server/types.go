package server

import (
	"github.com/rezonia/cte-checker/internal/divergence"
	"github.com/rezonia/cte-checker/internal/model"
)

// CompareRequest is the body of the compare endpoint
type CompareRequest struct {
	CTe  string   `json:"cte"`
	NFes []string `json:"nfes"`
}

// RulesResponse is the response for the rules endpoint
type RulesResponse struct {
	Rules []divergence.Rule `json:"rules"`
}

// InfoResponse is the response for info endpoint
type InfoResponse struct {
	Kind              model.DocumentKind `json:"kind"`
	Label             string             `json:"label"`
	Root              string             `json:"root"`
	Key               string             `json:"key,omitempty"`
	References        []string           `json:"references,omitempty"`
	UnkeyedReferences int                `json:"unkeyed_references,omitempty"`
	Size              int                `json:"size"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
