// Package suggest turns model output into well-formed parlay
// suggestions. Every external failure mode (gateway down, malformed
// text, empty slate) resolves to the built-in fallback set; the public
// operations never return an error.
package suggest

import (
	"context"
	"fmt"

	"github.com/XavierBriggs/tyche/internal/llm"
	"github.com/XavierBriggs/tyche/pkg/models"
)

const suggestionMaxTokens = 1000

// Source labels for metrics and logging.
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// Reconciler bridges the model gateway and the suggestion contract.
type Reconciler struct {
	gateway llm.Client
}

// NewReconciler creates a reconciler over the given model gateway.
// The gateway may be unavailable; the reconciler degrades to the
// fallback set.
func NewReconciler(gateway llm.Client) *Reconciler {
	return &Reconciler{gateway: gateway}
}

// Generate produces the daily suggestion set. The returned source is
// SourceAI when the model's output survived extraction, otherwise
// SourceFallback. Generate never fails.
func (r *Reconciler) Generate(ctx context.Context, games []models.Game, props []models.PlayerProp, prefs *models.Preferences) ([]models.Suggestion, string) {
	// Nothing to recommend: skip the model call entirely.
	if len(games) == 0 {
		return FallbackSuggestions(), SourceFallback
	}

	if r.gateway == nil || !r.gateway.Available() {
		return FallbackSuggestions(), SourceFallback
	}

	prompt := buildPrompt(games, props, prefs)

	raw, err := r.gateway.Complete(ctx, prompt, suggestionMaxTokens)
	if err != nil {
		fmt.Printf("suggestion dispatch failed, serving fallback: %v\n", err)
		return FallbackSuggestions(), SourceFallback
	}

	suggestions, ok := extractSuggestions(raw)
	if !ok {
		fmt.Println("suggestion extraction failed, serving fallback")
		return FallbackSuggestions(), SourceFallback
	}

	return suggestions, SourceAI
}
