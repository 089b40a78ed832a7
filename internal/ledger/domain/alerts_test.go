package domain

import "testing"

func collect(products []Product) []Product {
	var out []Product
	for p := range DeriveAlerts(products) {
		out = append(out, p)
	}
	return out
}

func TestDeriveAlerts_Filtering(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "bolts", Stock: 4, ReorderPoint: 5},
		{ID: 2, Name: "nuts", Stock: 7, ReorderPoint: 5},
		{ID: 3, Name: "washers", Stock: 5, ReorderPoint: 5}, // boundary: not an alert
		{ID: 4, Name: "screws", Stock: 0, ReorderPoint: 1},
	}

	alerts := collect(products)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}

	// Input order is preserved, no re-sorting.
	if alerts[0].ID != 1 || alerts[1].ID != 4 {
		t.Errorf("expected ids [1 4], got [%d %d]", alerts[0].ID, alerts[1].ID)
	}
}

func TestDeriveAlerts_Empty(t *testing.T) {
	if got := collect(nil); len(got) != 0 {
		t.Errorf("expected no alerts for empty input, got %d", len(got))
	}
}

func TestDeriveAlerts_Restartable(t *testing.T) {
	products := []Product{
		{ID: 1, Stock: 2, ReorderPoint: 5},
		{ID: 2, Stock: 1, ReorderPoint: 3},
	}

	seq := DeriveAlerts(products)

	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}

	if first != 2 || second != 2 {
		t.Errorf("sequence not restartable: first=%d second=%d", first, second)
	}
}

func TestDeriveAlerts_EarlyStop(t *testing.T) {
	products := []Product{
		{ID: 1, Stock: 0, ReorderPoint: 5},
		{ID: 2, Stock: 0, ReorderPoint: 5},
		{ID: 3, Stock: 0, ReorderPoint: 5},
	}

	seen := 0
	for range DeriveAlerts(products) {
		seen++
		break
	}
	if seen != 1 {
		t.Errorf("expected early break after 1, saw %d", seen)
	}
}
