package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Kinds ошибок в теле ответа
const (
	KindValidation     = "validation"
	KindConflict       = "conflict"
	KindStorageFailure = "storage_failure"
	KindNotFound       = "not_found"
	KindInternal       = "internal"
)

const (
	msgInternalError = "internal server error"
	msgNotFound      = "resource not found"

	maxBodyBytes = 1 << 20
)

// ErrEmptyBody возвращается DecodeJSON при пустом теле запроса
var ErrEmptyBody = errors.New("handlers: empty request body")

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// RespondJSON отправляет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError отправляет ошибку с указанным статусом и типом
func RespondError(w http.ResponseWriter, status int, kind, message string) {
	RespondJSON(w, status, ErrorResponse{
		Code:    status,
		Kind:    kind,
		Message: message,
	})
}

// RespondBadRequest 400, ошибка валидации
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, KindValidation, message)
}

// RespondConflict 409, слот уже занят
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, KindConflict, message)
}

// RespondStorageFailure 503, хранилище недоступно
func RespondStorageFailure(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusServiceUnavailable, KindStorageFailure, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = msgNotFound
	}
	RespondError(w, http.StatusNotFound, KindNotFound, message)
}

// RespondInternalError 500, детали ошибки клиенту не раскрываются
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, KindInternal, msgInternalError)
}

// DecodeJSON декодирует тело запроса в dst
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	defer r.Body.Close()

	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	if errors.Is(err, io.EOF) {
		return ErrEmptyBody
	}
	return err
}

// NotFoundHandler отвечает 404 в формате ErrorResponse для неизвестных маршрутов
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		RespondNotFound(w, "")
	})
}
