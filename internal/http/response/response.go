// Package response builds the JSON bodies returned by the HTTP handlers.
// Errors always use the body {"erro": "<mensagem>"}, the contract the
// frontend of the first system version already speaks.
package response

import (
	"fmt"

	"github.com/go-playground/validator"

	"github.com/daii-team/school-scheduler/internal/apperror"
)

// ErrorResponse is the error body of every failed request.
type ErrorResponse struct {
	Erro string `json:"erro"`
}

// Error builds an ErrorResponse with the given message.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Erro: msg}
}

// FromAppError builds the error body for a typed application error.
func FromAppError(err *apperror.Error) ErrorResponse {
	return ErrorResponse{Erro: err.Message}
}

// Deleted is the body returned after a successful delete.
type Deleted struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Registered is the body returned after a successful registration.
type Registered struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// LoggedIn is the body returned after a successful login.
type LoggedIn struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ValidationError condenses validator violations into one message.
// Only presence is enforced at the boundary, so the text stays close to
// the original "required fields" wording while naming the fields.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	for _, err := range errs {
		if err.ActualTag() == "required" {
			return Error("Campos obrigatórios não preenchidos")
		}
	}
	return Error(fmt.Sprintf("Campo %s inválido", errs[0].Field()))
}
