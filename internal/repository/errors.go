package repository

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound se devuelve cuando ningún documento coincide
var ErrNotFound = errors.New("document not found")

// DuplicateKeyError indica una violación de un índice único.
// Key es el campo del índice ("slug", "modelNumber"...), vacío si no se pudo determinar.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	if e.Key == "" {
		return "duplicate key"
	}
	return fmt.Sprintf("duplicate key on %s", e.Key)
}

// IsDuplicate informa si err es un DuplicateKeyError sobre key
func IsDuplicate(err error, key string) bool {
	var dup *DuplicateKeyError
	return errors.As(err, &dup) && dup.Key == key
}

// indexName es el nombre con el que se crea el índice único de key
func indexName(key string) string {
	return key + "_unique"
}

// duplicateKey convierte un E11000 de Mongo en *DuplicateKeyError,
// buscando en el mensaje cuál de keys provocó el choque.
func duplicateKey(err error, keys ...string) (*DuplicateKeyError, bool) {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return nil, false
	}
	msg := err.Error()
	for _, key := range keys {
		if strings.Contains(msg, "index: "+indexName(key)+" ") || strings.Contains(msg, "dup key: { "+key+":") {
			return &DuplicateKeyError{Key: key}, true
		}
	}
	return &DuplicateKeyError{}, true
}
