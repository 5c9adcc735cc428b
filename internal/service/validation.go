package service

import (
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/scolarite-dao/internal/repository"
	appErrors "github.com/noah-isme/scolarite-dao/pkg/errors"
)

// NewValidator returns a validator reporting fields by their JSON name.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// invalidPayload turns validation failures into a 400 naming the first bad field.
func invalidPayload(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "requête invalide")
	}
	fe := fieldErrs[0]
	var message string
	switch fe.Tag() {
	case "required":
		message = fmt.Sprintf("le champ %s est obligatoire", fe.Field())
	case "email":
		message = fmt.Sprintf("le champ %s doit être une adresse e-mail valide", fe.Field())
	case "gte", "lte":
		message = fmt.Sprintf("le champ %s doit être compris entre 0 et 20", fe.Field())
	default:
		message = fmt.Sprintf("le champ %s est invalide", fe.Field())
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

// storeFailure maps repository errors onto the answers of the mock backend.
func storeFailure(err error, notFound, failed string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	case errors.Is(err, repository.ErrInvalidReference):
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "référence inconnue")
	case errors.Is(err, repository.ErrDuplicateNote):
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "une note existe déjà pour cet étudiant dans cette UE")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, failed)
}
