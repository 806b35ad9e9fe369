package model

import (
	"last_queue/internal/engine"
	"math"
	"testing"
)

func TestSanitizeFacts(t *testing.T) {
	facts := engine.Facts{
		engine.FactRho:                 1.2,
		engine.FactExpectedQueueLength: math.Inf(1),
		engine.FactStability:           "Collapsed",
		engine.FactWaitProbability:     math.NaN(),
	}
	out := SanitizeFacts(facts)
	if out[engine.FactExpectedQueueLength] != nil || out[engine.FactWaitProbability] != nil {
		t.Fatalf("non-finite values must become nil: %v", out)
	}
	if out[engine.FactRho] != 1.2 || out[engine.FactStability] != "Collapsed" {
		t.Fatalf("finite values must pass through: %v", out)
	}
	if !math.IsInf(facts[engine.FactExpectedQueueLength].(float64), 1) {
		t.Fatalf("input facts must not be modified")
	}
}
