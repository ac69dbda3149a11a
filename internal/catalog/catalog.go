// Package catalog loads the curriculum shape and the shop price list.
// Both ship with embedded defaults and may be overridden by JSON files.
package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/zephyr/internal/domain"
	"github.com/osse101/zephyr/internal/validation"
)

//go:embed defaults/*.json
var defaults embed.FS

//go:embed schemas/*.json
var schemaFiles embed.FS

var (
	validate = validator.New(validator.WithRequiredStructEnabled())
	schemas  = validation.NewSchemaValidator(schemaFiles)
)

// decode checks a JSON document against its schema, then strictly decodes and
// validates it into target
func decode(name string, data []byte, schema string, target any) error {
	if err := schemas.ValidateBytes(data, schema); err != nil {
		return fmt.Errorf(ErrMsgSchemaFailed, name, err, domain.ErrInvalidSource)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf(ErrMsgDecodeFailed, name, err, domain.ErrInvalidSource)
	}
	if err := validate.Struct(target); err != nil {
		return fmt.Errorf(ErrMsgValidationFailed, name, err, domain.ErrInvalidSource)
	}
	return nil
}

func readSource(path, fallback string) (string, []byte, error) {
	if path == "" {
		data, err := defaults.ReadFile(fallback)
		return fallback, data, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return path, nil, fmt.Errorf(ErrMsgReadFileFailed, path, err)
	}
	return path, data, nil
}

// LoadShopCatalog reads the shop catalog at path, or the embedded default when path is empty
func LoadShopCatalog(path string) (domain.ShopCatalog, error) {
	var c domain.ShopCatalog
	name, data, err := readSource(path, defaultShopFile)
	if err != nil {
		return c, err
	}
	if err := decode(name, data, shopSchema, &c); err != nil {
		return domain.ShopCatalog{}, err
	}
	return c, nil
}

// LoadCurriculum reads the curriculum at path, or the embedded default when path is empty
func LoadCurriculum(path string) (*Curriculum, error) {
	name, data, err := readSource(path, defaultCurriculumFile)
	if err != nil {
		return nil, err
	}
	var raw domain.Curriculum
	if err := decode(name, data, curriculumSchema, &raw); err != nil {
		return nil, err
	}
	return NewCurriculum(raw)
}
