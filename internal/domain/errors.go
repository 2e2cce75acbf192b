package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidRecord = errors.New("registro de factura inválido")
	ErrComputation   = errors.New("cálculo de factura fallido")
)

// InvalidRecordError indica que el registro no tiene la forma mínima esperada
// (p. ej. custom_services ausente o que no es un arreglo).
type InvalidRecordError struct {
	Field  string
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("registro inválido: %s: %s", e.Field, e.Reason)
}

// Is permite errors.Is(err, ErrInvalidRecord).
func (e *InvalidRecordError) Is(target error) bool { return target == ErrInvalidRecord }

// ComputationError identifica el campo que impidió calcular o formatear un total
// (valores no finitos).
type ComputationError struct {
	Field  string
	Reason string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("cálculo inválido: %s: %s", e.Field, e.Reason)
}

// Is permite errors.Is(err, ErrComputation).
func (e *ComputationError) Is(target error) bool { return target == ErrComputation }
