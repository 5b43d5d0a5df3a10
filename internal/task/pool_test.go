package task

import (
	"testing"

	"github.com/blaubart69/ultradel/internal/fsi"
)

func TestPoolRecyclesAndTracksUnused(t *testing.T) {
	var p Pool

	t1 := p.Get(PhaseScan)
	t1.First = 7
	t1.Errors = append(t1.Errors, fsi.Error{Code: 1, Func: "x"})

	if p.Unused() {
		t.Fatalf("an outstanding task must not be reported unused")
	}

	p.Put(t1)
	if !p.Unused() {
		t.Fatalf("pool should be unused once every task is returned")
	}

	t2 := p.Get(PhaseDeleteFiles)
	if t2 != t1 {
		t.Fatalf("Get should recycle the returned task")
	}
	if t2.First != 0 || len(t2.Errors) != 0 {
		t.Fatalf("Put should have cleared transient fields, got First=%d Errors=%v", t2.First, t2.Errors)
	}
	if t2.Phase != PhaseDeleteFiles {
		t.Fatalf("Get should set the requested phase")
	}
}
