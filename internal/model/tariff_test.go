package model

import "testing"

func TestTimeSlot_Contains(t *testing.T) {
	tests := []struct {
		name  string
		slot  TimeSlot
		in    []int
		notIn []int
	}{
		{"same day", TimeSlot{StartHour: 6, EndHour: 9}, []int{6, 7, 8}, []int{5, 9, 23}},
		{"wraps midnight", TimeSlot{StartHour: 22, EndHour: 6}, []int{22, 23, 0, 3, 5}, []int{6, 12, 21}},
		{"end written as 24", TimeSlot{StartHour: 17, EndHour: 24}, []int{17, 23}, []int{0, 16}},
		{"whole day", TimeSlot{StartHour: 0, EndHour: 24}, []int{0, 12, 23}, []int{-1, 24}},
		{"start equals end", TimeSlot{StartHour: 6, EndHour: 6}, []int{0, 5, 6, 12, 23}, []int{-1, 24}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, h := range tt.in {
				if !tt.slot.Contains(h) {
					t.Errorf("expected hour %d inside %d-%d", h, tt.slot.StartHour, tt.slot.EndHour)
				}
			}
			for _, h := range tt.notIn {
				if tt.slot.Contains(h) {
					t.Errorf("expected hour %d outside %d-%d", h, tt.slot.StartHour, tt.slot.EndHour)
				}
			}
		})
	}
}

func TestTimeSlot_Hours(t *testing.T) {
	if h := (TimeSlot{StartHour: 22, EndHour: 6}).Hours(); h != 8 {
		t.Errorf("22-06: want 8 got %d", h)
	}
	if h := (TimeSlot{StartHour: 9, EndHour: 17}).Hours(); h != 8 {
		t.Errorf("09-17: want 8 got %d", h)
	}
	if h := (TimeSlot{StartHour: 6, EndHour: 6}).Hours(); h != 24 {
		t.Errorf("06-06: want 24 got %d", h)
	}
	if h := (TimeSlot{StartHour: 0, EndHour: 24}).Hours(); h != 24 {
		t.Errorf("00-24: want 24 got %d", h)
	}
}

func TestTariffSchedule_ValidatePartition(t *testing.T) {
	ok := TariffSchedule{TimeSlots: []TimeSlot{
		{Name: "Night", StartHour: 22, EndHour: 6},
		{Name: "Day", StartHour: 6, EndHour: 22},
	}}
	if err := ok.ValidatePartition(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gap := TariffSchedule{TimeSlots: []TimeSlot{{Name: "Day", StartHour: 6, EndHour: 22}}}
	if err := gap.ValidatePartition(); err == nil {
		t.Fatalf("expected gap error")
	}

	overlap := TariffSchedule{TimeSlots: []TimeSlot{
		{Name: "All", StartHour: 0, EndHour: 24},
		{Name: "Peak", StartHour: 18, EndHour: 22},
	}}
	if err := overlap.ValidatePartition(); err == nil {
		t.Fatalf("expected overlap error")
	}

	if err := (TariffSchedule{}).ValidatePartition(); err == nil {
		t.Fatalf("expected error for schedule without slots")
	}
}

func TestTariffSchedule_SlotsOfAndClone(t *testing.T) {
	s := TariffSchedule{TimeSlots: []TimeSlot{
		{Name: "Morning Peak", Category: CategoryPeak},
		{Name: "Normal", Category: CategoryNormal},
		{Name: "Evening Peak", Category: CategoryPeak},
	}}
	peaks := s.SlotsOf(CategoryPeak)
	if len(peaks) != 2 || peaks[0].Name != "Morning Peak" || peaks[1].Name != "Evening Peak" {
		t.Fatalf("unexpected peak slots: %+v", peaks)
	}
	if len(s.SlotsOf(CategoryOffPeak)) != 0 {
		t.Fatalf("expected no off-peak slots")
	}

	c := s.Clone()
	c.TimeSlots[0].Name = "changed"
	if s.TimeSlots[0].Name != "Morning Peak" {
		t.Fatalf("Clone shares slot storage with the original")
	}
}
