package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("new screen should be blank, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 4)
	s.SetColored(3, 1, '@', ColorBrightWhite)

	c := s.GetCell(3, 1)
	if c.Rune != '@' || c.Color != ColorBrightWhite {
		t.Errorf("GetCell(3, 1) = %+v, expected '@' in ColorBrightWhite", c)
	}

	s.SetColored(-1, 0, 'X', ColorRed)
	s.SetColored(0, 10, 'X', ColorRed)
	if s.GetCell(-1, 0) != blank {
		t.Error("out of bounds GetCell should return a blank cell")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawTextColored(2, 1, "LIVES", ColorRed)

	if got := s.Row(1)[2:7]; got != "LIVES" {
		t.Errorf("Row(1)[2:7] = %q, expected %q", got, "LIVES")
	}
	if s.GetCell(4, 1).Color != ColorRed {
		t.Errorf("DrawTextColored color = %v, expected %v", s.GetCell(4, 1).Color, ColorRed)
	}

	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("text should be clipped at the right boundary")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawTextCentered(1, "Hi")

	x := (20 - 2) / 2
	if s.Get(x, 1) != 'H' || s.Get(x+1, 1) != 'i' {
		t.Errorf("DrawTextCentered did not center %q, row = %q", "Hi", s.Row(1))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4), ColorGray)

	expected := []string{
		"┌────┐",
		"│    │",
		"│    │",
		"└────┘",
	}
	if got := s.String(); got != strings.Join(expected, "\n") {
		t.Errorf("String() = \n%s\nexpected\n%s", got, strings.Join(expected, "\n"))
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(1, 1, '#')
	s.Resize(8, 2)

	if s.Width() != 8 || s.Height() != 2 {
		t.Errorf("Resize() dims = %dx%d, expected 8x2", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Errorf("Resize() should clear content, got %q", s.Get(1, 1))
	}
}
