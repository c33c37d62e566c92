package validator

import (
	"github.com/go-playground/validator/v10"
	"verifid.io/application/constants"
	"verifid.io/application/utils"
)

func validateLatitude(fl validator.FieldLevel) bool {
	latitude := fl.Field().Float()
	return latitude >= -90 && latitude <= 90
}

func validateLongitude(fl validator.FieldLevel) bool {
	longitude := fl.Field().Float()
	return longitude >= -180 && longitude <= 180
}

func validateDocumentType(fl validator.FieldLevel) bool {
	docType := fl.Field().String()
	return utils.HasItemString(&constants.SUPPORTED_DOCUMENT_TYPES, docType)
}
