package catalog

import "context"

// DeletePrompt is the question put to the operator before a product is removed
const DeletePrompt = "Are you sure you want to remove this timepiece from the collection?"

// Confirmer answers a blocking yes/no prompt
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Answer is a Confirmer with a fixed reply
type Answer bool

func (a Answer) Confirm(context.Context, string) bool {
	return bool(a)
}
