package random

import "testing"

func TestTransactionID(t *testing.T) {
	seen := make(map[uint16]bool)
	const iterations = 10000

	for i := 0; i < iterations; i++ {
		id := TransactionID()
		seen[id] = true
	}

	uniqueCount := len(seen)
	if uniqueCount < iterations*9/10 {
		t.Errorf("too many collisions: got %d unique IDs from %d iterations", uniqueCount, iterations)
	}
}

func TestIntNRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := IntN(13)
		if v < 0 || v >= 13 {
			t.Fatalf("IntN(13) = %d out of range", v)
		}
	}
}

func TestIntNPanicsOnNonPositive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for n <= 0")
		}
	}()
	IntN(0)
}

func TestChoiceReturnsOneOfTheElements(t *testing.T) {
	items := []string{"a", "b", "c"}
	for i := 0; i < 100; i++ {
		v := Choice(items)
		if v != "a" && v != "b" && v != "c" {
			t.Fatalf("Choice returned unexpected value %q", v)
		}
	}
}

func BenchmarkTransactionID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		TransactionID()
	}
}
