package flowgraph

import "testing"

func TestObserverRewrite_WrapsEveryVertex(t *testing.T) {
	var wrapped []string
	obs := func(v *Node) Transform {
		inner := v.F
		return TransformFunc(func(x any) (any, error) {
			wrapped = append(wrapped, v.ID)
			return inner.Apply(x)
		})
	}

	root := New(identity(), WithID("root"))
	Each(root, identity(), WithID("child"))

	ObserverRewrite(obs, root.Node())

	if errs := RunSync(root.Node(), []any{1}); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	want := []string{"root", "child"}
	if len(wrapped) != len(want) {
		t.Fatalf("want %v, got %v", want, wrapped)
	}
	for i := range want {
		if wrapped[i] != want[i] {
			t.Fatalf("want %v, got %v", want, wrapped)
		}
	}
}

func TestTimingObserver_PreservesResultAndError(t *testing.T) {
	root := New(double(), WithID("root"))
	ObserverRewrite(TimingObserver, root.Node())

	y, err := root.Node().F.Apply(21)
	if err != nil {
		t.Fatal(err)
	}
	if y.(int) != 42 {
		t.Fatalf("want 42, got %v", y)
	}
}

func TestTraceObserver_PreservesResultAndError(t *testing.T) {
	root := New(double(), WithID("root"))
	ObserverRewrite(TraceObserver, root.Node())

	y, err := root.Node().F.Apply(10)
	if err != nil {
		t.Fatal(err)
	}
	if y.(int) != 20 {
		t.Fatalf("want 20, got %v", y)
	}
}
