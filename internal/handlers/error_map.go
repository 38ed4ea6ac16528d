package handlers

import (
	"net/http"

	"parking-discount/internal/apperror"
	"parking-discount/internal/logger"
)

func writeServiceError(w http.ResponseWriter, log *logger.Logger, err error, internalMessage string) {
	status := apperror.HTTPStatus(err)
	if status != http.StatusInternalServerError {
		writeErrorResponse(w, status, err.Error())
		return
	}
	if log != nil {
		log.WithError(err).Error(internalMessage)
	}
	writeErrorResponse(w, http.StatusInternalServerError, internalMessage)
}
