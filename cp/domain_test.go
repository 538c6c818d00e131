package cp

import "testing"

func newTestDomain(lb, ub int) (*Domain, *trail) {
	tr := newTrail()
	d := newDomain(0, tr, lb, ub)
	tr.domains = append(tr.domains, d)
	return d, tr
}

func TestDomainInitialInterval(t *testing.T) {
	tests := []struct {
		name       string
		lb, ub     int
		wantSize   int
		wantLB     int
		wantUB     int
	}{
		{"single value", 5, 5, 1, 5, 5},
		{"small range", 1, 9, 9, 1, 9},
		{"spans one word", 0, 63, 64, 0, 63},
		{"spans multiple blocks", 0, 200, 201, 0, 200},
		{"negative range", -10, 10, 21, -10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDomain(tt.lb, tt.ub)
			if d.Size() != tt.wantSize {
				t.Errorf("Size() = %d, want %d", d.Size(), tt.wantSize)
			}
			if d.GetLB() != tt.wantLB {
				t.Errorf("GetLB() = %d, want %d", d.GetLB(), tt.wantLB)
			}
			if d.GetUB() != tt.wantUB {
				t.Errorf("GetUB() = %d, want %d", d.GetUB(), tt.wantUB)
			}
		})
	}
}

func TestDomainAssign(t *testing.T) {
	d, _ := newTestDomain(1, 10)
	if op := d.Assign(5); op != opModified {
		t.Fatalf("Assign(5) = %v, want opModified", op)
	}
	if !d.IsSingleton() || d.GetLB() != 5 {
		t.Fatalf("domain not collapsed to {5}: lb=%d size=%d", d.GetLB(), d.Size())
	}
	// Assigning the already-singleton value is a no-op.
	if op := d.Assign(5); op != opSame {
		t.Fatalf("re-Assign(5) = %v, want opSame", op)
	}
	// Assigning an absent value fails.
	d2, _ := newTestDomain(1, 10)
	d2.Remove(5)
	if op := d2.Assign(5); op != opFailed {
		t.Fatalf("Assign(5) on domain without 5 = %v, want opFailed", op)
	}
	if !d2.IsEmpty() {
		t.Fatal("failed domain should be empty")
	}
}

func TestDomainRemove(t *testing.T) {
	d, _ := newTestDomain(1, 3)
	if op := d.Remove(2); op != opModified {
		t.Fatalf("Remove(2) = %v, want opModified", op)
	}
	if d.Possible(2) {
		t.Fatal("2 should no longer be possible")
	}
	if op := d.Remove(2); op != opSame {
		t.Fatalf("re-Remove(2) = %v, want opSame", op)
	}
	d.Remove(1)
	if op := d.Remove(3); op != opFailed {
		t.Fatalf("Remove(3) emptying the domain = %v, want opFailed", op)
	}
}

func TestDomainSetLBSetUB(t *testing.T) {
	d, _ := newTestDomain(1, 10)
	d.SetLB(4)
	if d.GetLB() != 4 || d.Size() != 7 {
		t.Fatalf("SetLB(4): lb=%d size=%d", d.GetLB(), d.Size())
	}
	d.SetUB(6)
	if d.GetUB() != 6 || d.Size() != 3 {
		t.Fatalf("SetUB(6): ub=%d size=%d", d.GetUB(), d.Size())
	}
	// Loosening a bound is a no-op.
	if op := d.SetLB(0); op != opSame {
		t.Fatalf("SetLB(0) loosening = %v, want opSame", op)
	}
	d2, _ := newTestDomain(1, 10)
	if op := d2.SetLB(11); op != opFailed {
		t.Fatalf("SetLB(11) past ub = %v, want opFailed", op)
	}
}

func TestDomainIterAscending(t *testing.T) {
	d, _ := newTestDomain(1, 10)
	d.Remove(3)
	d.Remove(7)
	var got []int
	d.Iter(func(v int) { got = append(got, v) })
	want := []int{1, 2, 4, 5, 6, 8, 9, 10}
	if len(got) != len(want) {
		t.Fatalf("Iter produced %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Iter produced %v, want %v", got, want)
		}
	}
}

func TestDomainGetMedian(t *testing.T) {
	d, _ := newTestDomain(1, 5)
	if got := d.GetMedian(); got != 3 {
		t.Errorf("GetMedian() over [1,5] = %d, want 3", got)
	}
	d2, _ := newTestDomain(1, 10)
	d2.Remove(1)
	d2.Remove(2)
	if got := d2.GetMedian(); got != 7 {
		t.Errorf("GetMedian() over {3..10} = %d, want 7", got)
	}
}

// TestDomainCheckpointRollback is the rollback-correctness property:
// after checkpoint, arbitrary mutations, then rollback, the domain
// equals its pre-mutation state.
func TestDomainCheckpointRollback(t *testing.T) {
	d, tr := newTestDomain(1, 20)
	d.Remove(5)
	d.SetLB(2)

	wantSize := d.Size()
	wantLB := d.GetLB()
	wantUB := d.GetUB()
	wantBlocks := append([]uint64(nil), d.blocks...)

	mark := tr.mark()
	d.Remove(10)
	d.SetUB(15)
	d.Assign(8)

	tr.rollbackTo(mark)

	if d.Size() != wantSize {
		t.Errorf("Size() after rollback = %d, want %d", d.Size(), wantSize)
	}
	if d.GetLB() != wantLB {
		t.Errorf("GetLB() after rollback = %d, want %d", d.GetLB(), wantLB)
	}
	if d.GetUB() != wantUB {
		t.Errorf("GetUB() after rollback = %d, want %d", d.GetUB(), wantUB)
	}
	for i, b := range wantBlocks {
		if d.blocks[i] != b {
			t.Errorf("block %d after rollback = %x, want %x", i, d.blocks[i], b)
		}
	}
}

func TestDomainRollbackAcrossMultipleLevels(t *testing.T) {
	d, tr := newTestDomain(1, 100)
	mark1 := tr.mark()
	d.Remove(50)
	mark2 := tr.mark()
	d.Remove(60)
	d.Remove(70)
	if d.Size() != 97 {
		t.Fatalf("Size() = %d, want 97", d.Size())
	}
	tr.rollbackTo(mark2)
	if d.Size() != 99 {
		t.Fatalf("Size() after inner rollback = %d, want 99", d.Size())
	}
	tr.rollbackTo(mark1)
	if d.Size() != 100 {
		t.Fatalf("Size() after outer rollback = %d, want 100", d.Size())
	}
}

func TestDomainCloneIsDetached(t *testing.T) {
	d, _ := newTestDomain(1, 10)
	clone := d.Clone()
	d.Remove(5)
	if !clone.Possible(5) {
		t.Fatal("mutating the original should not affect the clone")
	}
}
