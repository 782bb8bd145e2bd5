package params

import (
	"fmt"

	"github.com/shrit/mlpack/core/model"
	"github.com/shrit/mlpack/pkg/log"
)

// Model is a serializable model of type T, read from or written to an
// archive named on the command line.
type Model[T any] struct {
	fileSlot
	m *T
}

// Ptr returns the storage of the model.
func (x *Model[T]) Ptr() **T { return &x.m }

func (x *Model[T]) Materialize(d *ParamData, logger log.Logger) error {
	if !x.pending(d) {
		return nil
	}
	m, h, err := model.Load[T](x.path)
	if err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("Loading model from '%s'.", x.path),
		log.ParamNameKey, d.Name,
		log.ModelNameKey, h.Name,
		log.EstimatorIDKey, h.ID,
	)
	x.m = m
	x.loaded = true
	return nil
}

func (x *Model[T]) Persist(d *ParamData, logger log.Logger) error {
	if !x.destination(d) || x.m == nil {
		return nil
	}
	h, err := model.Save(x.path, x.m)
	if err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("Saving model to '%s'.", x.path),
		log.ParamNameKey, d.Name,
		log.ModelNameKey, h.Name,
		log.EstimatorIDKey, h.ID,
	)
	return nil
}

// Printable is the archive path. The model is not loaded.
func (x *Model[T]) Printable(*ParamData, log.Logger) (string, error) {
	return x.path, nil
}
