package services

import (
	"context"
	"fmt"

	"github.com/rozeen-shrestha/confession/models"
)

type SequenceCounter interface {
	Next(ctx context.Context, name string) (int64, error)
}

// SequenceNamer hands out anonymous1, anonymous2, ... from a shared counter.
type SequenceNamer struct {
	counter SequenceCounter
}

func NewSequenceNamer(counter SequenceCounter) *SequenceNamer {
	return &SequenceNamer{counter: counter}
}

func (n *SequenceNamer) NextName(ctx context.Context) (string, error) {
	seq, err := n.counter.Next(ctx, models.ConfessionCounterID)
	if err != nil {
		return "", fmt.Errorf("next confession number: %w", err)
	}
	return fmt.Sprintf("anonymous%d", seq), nil
}
