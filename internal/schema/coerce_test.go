package schema

import "testing"

func TestCoerceValueInteger(t *testing.T) {
	col := Column{Name: "user_id", Type: TypeInteger}

	got, err := CoerceValue(col, float64(7))
	if err != nil || got != int64(7) {
		t.Fatalf("whole float: got %v err %v", got, err)
	}
	if _, err := CoerceValue(col, 7.5); err == nil {
		t.Fatalf("fractional value must be rejected for an integer column")
	}
	got, err = CoerceValue(col, " 42 ")
	if err != nil || got != int64(42) {
		t.Fatalf("numeric string: got %v err %v", got, err)
	}
	if _, err := CoerceValue(col, "abc"); err == nil {
		t.Fatalf("non-numeric string must be rejected")
	}
}

func TestCoerceValueDecimal(t *testing.T) {
	col := Column{Name: "hourly_rate", Type: TypeDecimal, Scale: 2}

	got, err := CoerceValue(col, 9.5)
	if err != nil || got != 9.5 {
		t.Fatalf("got %v err %v", got, err)
	}
	got, err = CoerceValue(col, "12.25")
	if err != nil || got != 12.25 {
		t.Fatalf("string decimal: got %v err %v", got, err)
	}
}

func TestCoerceValueDateTime(t *testing.T) {
	date := Column{Name: "appointment_date", Type: TypeDate}
	clock := Column{Name: "appointment_time", Type: TypeTime}

	if _, err := CoerceValue(date, "2024-04-01"); err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	if _, err := CoerceValue(date, "01/04/2024"); err == nil {
		t.Fatalf("non-canonical date accepted")
	}
	if _, err := CoerceValue(clock, "09:30"); err != nil {
		t.Fatalf("valid time rejected: %v", err)
	}
	if _, err := CoerceValue(clock, "9am"); err == nil {
		t.Fatalf("non-canonical time accepted")
	}
}

func TestCoerceValueNil(t *testing.T) {
	col := Column{Name: "photo", Type: TypeText}
	got, err := CoerceValue(col, nil)
	if err != nil || got != nil {
		t.Fatalf("nil must pass through, got %v err %v", got, err)
	}
}

func TestCoerceID(t *testing.T) {
	intCol := Column{Name: "user_id", Type: TypeInteger}

	got, err := CoerceID(intCol, "5")
	if err != nil || got != int64(5) {
		t.Fatalf("got %v err %v", got, err)
	}
	if _, err := CoerceID(intCol, "abc"); err == nil {
		t.Fatalf("non-numeric id must be rejected")
	}

	textCol := Column{Name: "code", Type: TypeText}
	got, err = CoerceID(textCol, "abc")
	if err != nil || got != "abc" {
		t.Fatalf("text id must pass through, got %v err %v", got, err)
	}
}
