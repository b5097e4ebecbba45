// Package slug deriva identificadores aptos para URL a partir de nombres
// y reserva variantes únicas contra el índice del almacén.
package slug

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// MaxAttempts limita los sufijos probados por Allocate
const MaxAttempts = 1000

var (
	specialChars = regexp.MustCompile(`[^\w\s-]`)
	separators   = regexp.MustCompile(`[\s_]+`)
	edgeHyphens  = regexp.MustCompile(`^-+|-+$`)
)

// ErrExhausted indica que no quedó ningún sufijo libre
var ErrExhausted = errors.New("no free slug available")

// Generate convierte "Hello World!" en "hello-world". Los caracteres fuera
// de [A-Za-z0-9_] se eliminan, por lo que un nombre solo en árabe da "".
func Generate(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	s = specialChars.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	return edgeHyphens.ReplaceAllString(s, "")
}

// WithFallback es Generate, pero sustituye un resultado vacío por
// "<prefix>-<unix millis>".
func WithFallback(name, prefix string, now time.Time) string {
	if s := Generate(name); s != "" {
		return s
	}
	return fmt.Sprintf("%s-%d", prefix, now.UnixMilli())
}

// Candidate devuelve el intento n-ésimo: base, base-1, base-2...
func Candidate(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// Allocate inserta con base y, mientras taken(err) informe de un choque en el
// índice único del slug, reintenta con el siguiente sufijo. El índice es la
// única fuente de verdad: no hay comprobación previa.
func Allocate(ctx context.Context, base string, insert func(candidate string) error, taken func(error) bool) (string, error) {
	for n := 0; n < MaxAttempts; n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate := Candidate(base, n)
		err := insert(candidate)
		if err == nil {
			return candidate, nil
		}
		if !taken(err) {
			return "", err
		}
	}
	return "", errors.Wrapf(ErrExhausted, "slug %q", base)
}
