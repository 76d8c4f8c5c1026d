package prompt

import "testing"

func TestStepperWalk(t *testing.T) {
	p := NewStepper([]string{"One.", "Two.", "Three."})

	if p.Index() != 0 || p.State() != StepActive {
		t.Fatalf("initial index=%d state=%v", p.Index(), p.State())
	}
	if p.Expected() != "One." {
		t.Fatalf("Expected() = %q", p.Expected())
	}

	for i, want := range []int{1, 2} {
		if !p.Apply(Command{Kind: Next}) {
			t.Fatalf("Next %d reported no change", i)
		}
		if p.Index() != want {
			t.Fatalf("after Next %d index = %d, want %d", i, p.Index(), want)
		}
	}
	if p.Expected() != "Three." {
		t.Fatalf("Expected() = %q, want %q", p.Expected(), "Three.")
	}

	// stepping past the last unit finishes the session
	if !p.Apply(Command{Kind: Next}) {
		t.Fatal("final Next reported no change")
	}
	if p.State() != StepDone || p.Index() != 3 {
		t.Fatalf("after final Next state=%v index=%d", p.State(), p.Index())
	}
	if p.Expected() != "" {
		t.Fatalf("Expected() after done = %q, want empty", p.Expected())
	}

	// done is terminal for movement
	if p.Apply(Command{Kind: Next}) {
		t.Error("Next while done should be a no-op")
	}
	if p.Apply(Command{Kind: Prev}) {
		t.Error("Prev while done should be a no-op")
	}
	if p.State() != StepDone {
		t.Fatalf("state = %v, want StepDone", p.State())
	}
}

func TestStepperPrev(t *testing.T) {
	p := NewStepper([]string{"a", "b"})

	if p.Apply(Command{Kind: Prev}) {
		t.Error("Prev at first unit should be a no-op")
	}
	if p.Index() != 0 {
		t.Fatalf("index = %d after no-op Prev", p.Index())
	}

	p.Apply(Command{Kind: Next})
	if !p.Apply(Command{Kind: Prev}) {
		t.Fatal("Prev reported no change")
	}
	if p.Index() != 0 || p.Expected() != "a" {
		t.Fatalf("index=%d expected=%q after Prev", p.Index(), p.Expected())
	}
}

func TestStepperQuit(t *testing.T) {
	p := NewStepper([]string{"a", "b"})

	if !p.Apply(Command{Kind: Quit}) {
		t.Fatal("Quit reported no change")
	}
	if p.State() != StepExited {
		t.Fatalf("state = %v, want StepExited", p.State())
	}
	for _, k := range []Kind{Next, Prev, Quit} {
		if p.Apply(Command{Kind: k}) {
			t.Errorf("%v after exit should be a no-op", k)
		}
	}
}

func TestStepperView(t *testing.T) {
	p := NewStepper([]string{"a", "b"})

	v := p.View()
	if v.Unit != "a" || v.Index != 0 || v.Total != 2 || v.Done {
		t.Fatalf("initial view %+v", v)
	}

	p.Apply(Command{Kind: Next})
	p.Apply(Command{Kind: Next})
	v = p.View()
	if !v.Done || v.Unit != "" || v.Index != 2 {
		t.Fatalf("done view %+v", v)
	}
}
