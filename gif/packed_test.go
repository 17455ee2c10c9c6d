package gif

import "testing"

func TestTableLen(t *testing.T) {
	for e := byte(0); e <= 7; e++ {
		want := 1 << (e + 1)
		if got := NewScreenPacked(true, 7, false, e).TableLen(); got != want {
			t.Errorf("screen e=%d: TableLen() = %d, want %d", e, got, want)
		}
		if got := NewImagePacked(true, false, false, e).TableLen(); got != want {
			t.Errorf("image e=%d: TableLen() = %d, want %d", e, got, want)
		}
		if got := NewScreenPacked(false, 7, false, e).TableLen(); got != 0 {
			t.Errorf("screen e=%d without flag: TableLen() = %d, want 0", e, got)
		}
	}
}

func TestScreenPacked(t *testing.T) {
	tests := []struct {
		name   string
		packed ScreenPacked
		table  bool
		res    int
		sorted bool
		exp    byte
	}{
		{"minimal", 0x80, true, 0, false, 0},
		{"typical 256 colors", 0xF7, true, 7, false, 7},
		{"sorted", 0x88, true, 0, true, 0},
		{"no table", 0x70, false, 7, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.packed
			if p.HasGlobalTable() != tt.table || p.ColorResolution() != tt.res ||
				p.Sorted() != tt.sorted || p.TableSizeExponent() != tt.exp {
				t.Fatalf("0x%.2x decoded as table=%v res=%d sorted=%v exp=%d",
					byte(p), p.HasGlobalTable(), p.ColorResolution(), p.Sorted(), p.TableSizeExponent())
			}
			if back := NewScreenPacked(tt.table, tt.res, tt.sorted, tt.exp); back != p {
				t.Fatalf("NewScreenPacked = 0x%.2x, want 0x%.2x", byte(back), byte(p))
			}
		})
	}
}

func TestImagePacked(t *testing.T) {
	p := ImagePacked(0xE5)
	if !p.HasLocalTable() || !p.Interlaced() || !p.Sorted() || p.TableSizeExponent() != 5 {
		t.Fatalf("0xE5 decoded wrongly")
	}
	if NewImagePacked(true, true, true, 5) != p {
		t.Fatalf("NewImagePacked(true, true, true, 5) = 0x%.2x", byte(NewImagePacked(true, true, true, 5)))
	}
	if ImagePacked(0x40).HasLocalTable() {
		t.Fatalf("interlace bit read as table flag")
	}
}

func TestControlPacked(t *testing.T) {
	tests := []struct {
		packed      ControlPacked
		disposal    int
		userInput   bool
		transparent bool
	}{
		{0x00, 0, false, false},
		{0x01, 0, false, true},
		{0x02, 0, true, false},
		{0x04, 1, false, false},
		{0x09, 2, false, true},
		{0x0C, 3, false, false},
		{0x1F, 7, true, true},
	}
	for _, tt := range tests {
		p := tt.packed
		if p.DisposalMethod() != tt.disposal || p.UserInput() != tt.userInput || p.HasTransparency() != tt.transparent {
			t.Errorf("0x%.2x: disposal=%d user=%v transparent=%v", byte(p), p.DisposalMethod(), p.UserInput(), p.HasTransparency())
		}
		if back := NewControlPacked(tt.disposal, tt.userInput, tt.transparent); back != p {
			t.Errorf("NewControlPacked = 0x%.2x, want 0x%.2x", byte(back), byte(p))
		}
	}
}

func TestTableSizeExponent(t *testing.T) {
	tests := []struct {
		n    int
		want byte
	}{
		{0, 0}, {1, 0}, {2, 0}, {3, 1}, {4, 1}, {5, 2}, {16, 3}, {17, 4}, {128, 6}, {256, 7}, {1000, 7},
	}
	for _, tt := range tests {
		if got := TableSizeExponent(tt.n); got != tt.want {
			t.Errorf("TableSizeExponent(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
