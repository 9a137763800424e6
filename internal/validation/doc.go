// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps the library in a thread-safe singleton with error translation
// to the API's VALIDATION_ERROR response format, so handlers validate
// request payloads with one call and respond consistently.
//
//	type RecommendRequest struct {
//	    Title string `validate:"omitempty,max=500"`
//	    TopN  int    `validate:"omitempty,min=1,max=10"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// The singleton is initialized once with WithRequiredStructEnabled and
// reused for every request; validator caches struct metadata, so repeat
// validations of the same type are cheap.
package validation
