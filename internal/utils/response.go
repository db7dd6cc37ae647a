package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"bugtrack/internal/apperr"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// WriteErr maps the error taxonomy to transport status codes. Anything
// outside the taxonomy is a 500 with a generic body.
func WriteErr(w http.ResponseWriter, err error) {
	var (
		nf *apperr.NotFoundError
		cf *apperr.ConflictError
		vd *apperr.ValidationError
		au *apperr.AuthenticationError
	)
	switch {
	case errors.As(err, &nf):
		Error(w, http.StatusNotFound, nf.Error())
	case errors.As(err, &cf):
		Error(w, http.StatusConflict, cf.Error())
	case errors.As(err, &vd):
		Error(w, http.StatusBadRequest, vd.Error())
	case errors.As(err, &au):
		Error(w, http.StatusUnauthorized, au.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal error")
	}
}
