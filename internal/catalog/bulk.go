package catalog

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
)

// Failure es un elemento que no se pudo crear. Raw guarda el JSON original
// cuando el elemento ni siquiera se pudo decodificar.
type Failure[In any] struct {
	Item  In
	Raw   json.RawMessage
	Error string
}

// Rejected es un elemento del lote que no se pudo decodificar.
// Index es su posición en el cuerpo recibido.
type Rejected struct {
	Index int
	Raw   json.RawMessage
}

type Summary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// BulkResult es el resultado de una creación masiva. Entity da nombre a la
// clave de cada fallo en JSON: {"category": {...}, "error": "..."}.
type BulkResult[In, Out any] struct {
	Entity  string
	Created []Out
	Failed  []Failure[In]
}

func (r *BulkResult[In, Out]) Summary() Summary {
	return Summary{
		Total:      len(r.Created) + len(r.Failed),
		Successful: len(r.Created),
		Failed:     len(r.Failed),
	}
}

func (r *BulkResult[In, Out]) MarshalJSON() ([]byte, error) {
	failed := make([]map[string]any, 0, len(r.Failed))
	for _, f := range r.Failed {
		var item any = f.Item
		if f.Raw != nil {
			item = f.Raw
		}
		failed = append(failed, map[string]any{r.Entity: item, "error": f.Error})
	}
	return json.Marshal(map[string]any{
		"created": r.Created,
		"failed":  failed,
		"summary": r.Summary(),
	})
}

// bulkCreate procesa items en orden; el fallo de uno no detiene el lote.
// rejected, ordenado por Index, se intercala en Failed según su posición.
func bulkCreate[In, Out any](ctx context.Context, entity string, items []In, rejected []Rejected, create func(context.Context, In) (*Out, error)) *BulkResult[In, Out] {
	res := &BulkResult[In, Out]{
		Entity:  entity,
		Created: make([]Out, 0, len(items)),
		Failed:  make([]Failure[In], 0),
	}
	invalid := func(r Rejected) Failure[In] {
		return Failure[In]{Raw: r.Raw, Error: "Invalid " + entity + " data"}
	}
	next := 0
	for i, item := range items {
		for next < len(rejected) && rejected[next].Index <= i+next {
			res.Failed = append(res.Failed, invalid(rejected[next]))
			next++
		}
		out, err := create(ctx, item)
		if err != nil {
			res.Failed = append(res.Failed, Failure[In]{Item: item, Error: failureMessage(entity, err)})
			if !IsClientError(err) {
				zap.S().Errorw("bulk create failed", "entity", entity, "index", i+next, "error", err)
			}
			continue
		}
		res.Created = append(res.Created, *out)
	}
	for ; next < len(rejected); next++ {
		res.Failed = append(res.Failed, invalid(rejected[next]))
	}
	return res
}

func failureMessage(entity string, err error) string {
	if IsClientError(err) {
		return err.Error()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "Request cancelled before " + entity + " was created"
	}
	return "Failed to create " + entity
}
