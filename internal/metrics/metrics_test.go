package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.OrderMutation(OpCreate, true)
	m.OrderMutation(OpDelete, false)
	m.OrderMutation(OpDelete, false)
	m.LoginAttempt(true)
	m.LoginAttempt(false)
	m.LoginAttempt(false)

	if got := testutil.ToFloat64(m.OrderMutationsTotal.WithLabelValues(OpCreate, "true")); got != 1 {
		t.Fatalf("create counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.OrderMutationsTotal.WithLabelValues(OpDelete, "false")); got != 2 {
		t.Fatalf("no-op delete counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.LoginAttemptsTotal.WithLabelValues(LoginFailure)); got != 2 {
		t.Fatalf("login failure counter = %v, want 2", got)
	}
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.LoginAttempt(true)

	if got := testutil.ToFloat64(b.LoginAttemptsTotal.WithLabelValues(LoginSuccess)); got != 0 {
		t.Fatalf("registries must not share state, got %v", got)
	}
}
