package filter

import (
	"strings"
	"testing"
)

func TestNewRange(t *testing.T) {
	r := GTE(10)
	c, err := NewRange("price", r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.IsRange() || c.IsEquals() {
		t.Error("expected a range condition")
	}
	if c.Key() != "price" {
		t.Errorf("Key() = %q", c.Key())
	}
	if c.Range().Min() == nil || *c.Range().Min() != 10 {
		t.Errorf("Min() = %v, want 10", c.Range().Min())
	}
	if c.Range().Max() != nil {
		t.Errorf("Max() = %v, want nil", c.Range().Max())
	}
}

func TestBetween(t *testing.T) {
	r := Between(10, 50)
	if r.Min() == nil || *r.Min() != 10 {
		t.Errorf("Min() = %v, want 10", r.Min())
	}
	if r.Max() == nil || *r.Max() != 50 {
		t.Errorf("Max() = %v, want 50", r.Max())
	}
}

func TestNewRange_Invalid(t *testing.T) {
	if _, err := NewRange("", GTE(1)); err == nil {
		t.Error("expected error for empty key")
	}
	if _, err := NewRange("price", Range{}); err == nil {
		t.Error("expected error for unbounded range")
	} else if !strings.Contains(err.Error(), "at least one") {
		t.Errorf("error = %q", err)
	}
}

func TestNewEquals(t *testing.T) {
	c, err := NewEquals("category_id", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.IsEquals() || c.IsRange() {
		t.Error("expected an equality condition")
	}
	if *c.Equals() != 3 {
		t.Errorf("Equals() = %d, want 3", *c.Equals())
	}

	if _, err := NewEquals("", 3); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestExpression_IsEmpty(t *testing.T) {
	if !NewExpression().IsEmpty() {
		t.Error("expression without conditions should be empty")
	}
	var zero Expression
	if !zero.IsEmpty() {
		t.Error("zero expression should be empty")
	}

	c, _ := NewEquals("category_id", 1)
	if NewExpression(c).IsEmpty() {
		t.Error("expression with a condition should not be empty")
	}
}
