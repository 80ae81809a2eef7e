package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates row identifiers for league records.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues UUIDv7 values so ids sort by creation time.
type UUIDGenerator struct {
	// Prefix is prepended verbatim, e.g. "lg_".
	Prefix string
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	value, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid v7: %w", err)
	}
	return g.Prefix + value.String(), nil
}
