package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveOperation(t *testing.T) {
	r := New()

	r.ObserveOperation("create_item", nil, time.Millisecond)
	r.ObserveOperation("create_item", nil, time.Millisecond)
	r.ObserveOperation("delete_item", errors.New("boom"), time.Millisecond)

	if got := testutil.ToFloat64(r.operations.WithLabelValues("create_item", ResultOK)); got != 2 {
		t.Errorf("create_item ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.operations.WithLabelValues("delete_item", ResultError)); got != 1 {
		t.Errorf("delete_item error = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(r.duration); got != 2 {
		t.Errorf("duration series = %d, want 2", got)
	}
}

func TestObserveSkipped(t *testing.T) {
	r := New()

	r.ObserveSkipped("clear_quantities", ResultDeclined)
	r.ObserveSkipped("clear_quantities", ResultInvalid)
	r.ObserveSkipped("clear_quantities", ResultInvalid)

	if got := testutil.ToFloat64(r.operations.WithLabelValues("clear_quantities", ResultDeclined)); got != 1 {
		t.Errorf("clear_quantities declined = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.operations.WithLabelValues("clear_quantities", ResultInvalid)); got != 2 {
		t.Errorf("clear_quantities invalid = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(r.duration); got != 0 {
		t.Errorf("duration series = %d, want 0", got)
	}
}

func TestObserveAuth(t *testing.T) {
	r := New()

	r.ObserveAuth("login", nil)
	r.ObserveAuth("login", errors.New("bad password"))

	if got := testutil.ToFloat64(r.authAttempts.WithLabelValues("login", ResultOK)); got != 1 {
		t.Errorf("login ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.authAttempts.WithLabelValues("login", ResultError)); got != 1 {
		t.Errorf("login error = %v, want 1", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.ObserveOperation("view_items", nil, time.Millisecond)

	path := filepath.Join(t.TempDir(), "moving_items.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), `moving_items_operations_total{operation="view_items",result="ok"} 1`) {
		t.Errorf("textfile missing operations counter:\n%s", data)
	}
}
