package clock

import (
	"testing"
	"time"
)

func TestFakeAdvanceFiresInOrder(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	c := NewFake(start)

	var order []int
	c.AfterFunc(3*time.Second, func() { order = append(order, 3) })
	c.AfterFunc(1*time.Second, func() { order = append(order, 1) })
	c.AfterFunc(10*time.Second, func() { order = append(order, 10) })

	c.Advance(5 * time.Second)

	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Fatalf("unexpected fire order: %v", order)
	}
	if c.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", c.Pending())
	}
	if got := c.Now(); !got.Equal(start.Add(5 * time.Second)) {
		t.Errorf("Now() = %v, want %v", got, start.Add(5*time.Second))
	}
}

func TestFakeStop(t *testing.T) {
	c := NewFake(time.Now())
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Fatal("first Stop() should report true")
	}
	if timer.Stop() {
		t.Error("second Stop() should report false")
	}

	c.Advance(2 * time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestFakeCallbackCanArm(t *testing.T) {
	c := NewFake(time.Now())
	count := 0
	c.AfterFunc(time.Second, func() {
		count++
		c.AfterFunc(time.Second, func() { count++ })
	})

	c.Advance(3 * time.Second)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestFakeSetDoesNotFire(t *testing.T) {
	start := time.Now()
	c := NewFake(start)
	fired := false
	c.AfterFunc(time.Minute, func() { fired = true })

	c.Set(start.Add(time.Hour))
	if fired {
		t.Error("Set should not fire timers")
	}
	if c.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", c.Pending())
	}
}
