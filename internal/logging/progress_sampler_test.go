package logging

import "testing"

func TestNewProgressSampler(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"default bucket size for zero", 0, 5},
		{"default bucket size for negative", -1, 5},
		{"custom bucket size", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", s.bucketSize, tt.wantSize)
			}
			if s.lastBucket != -1 {
				t.Errorf("lastBucket = %d, want -1", s.lastBucket)
			}
		})
	}
}

func TestProgressSamplerNilSampler(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(50, "encode") {
		t.Error("ShouldLog on nil sampler should always return true")
	}
	s.Reset() // should not panic
}

func TestProgressSamplerPhaseChange(t *testing.T) {
	s := NewProgressSampler(5)

	if !s.ShouldLog(0, "demux") {
		t.Error("first phase should log")
	}
	if s.ShouldLog(0, "demux") {
		t.Error("same phase and percent should not log again")
	}
	if !s.ShouldLog(0, "encode") {
		t.Error("different phase should log")
	}
	if s.lastPhase != "encode" {
		t.Errorf("lastPhase = %q, want encode", s.lastPhase)
	}
}

func TestProgressSamplerPercentBuckets(t *testing.T) {
	s := NewProgressSampler(5)

	if !s.ShouldLog(0, "encode") {
		t.Error("0% should log")
	}
	if s.ShouldLog(3, "encode") {
		t.Error("3% should not log (same bucket)")
	}
	if !s.ShouldLog(5, "encode") {
		t.Error("5% should log (new bucket)")
	}
	if s.ShouldLog(7, "encode") {
		t.Error("7% should not log (same bucket)")
	}
	if !s.ShouldLog(10, "encode") {
		t.Error("10% should log (new bucket)")
	}
}

func TestProgressSamplerCaps100Percent(t *testing.T) {
	s := NewProgressSampler(5)

	s.ShouldLog(95, "encode")
	if !s.ShouldLog(100, "encode") {
		t.Error("100% should log")
	}
	if s.ShouldLog(105, "encode") {
		t.Error("105% should not log again (same as 100% bucket)")
	}
}

func TestProgressSamplerBucketResetOnPhaseChange(t *testing.T) {
	s := NewProgressSampler(5)

	s.ShouldLog(50, "demux")
	s.ShouldLog(0, "encode")

	if !s.ShouldLog(10, "encode") {
		t.Error("10% should log after phase change reset bucket")
	}
}

func TestProgressSamplerNegativePercent(t *testing.T) {
	s := NewProgressSampler(5)

	if !s.ShouldLog(-1, "probe") {
		t.Error("first call should log even with negative percent")
	}
	if s.ShouldLog(-1, "probe") {
		t.Error("negative percent should not trigger bucket logging")
	}
}

func TestProgressSamplerReset(t *testing.T) {
	s := NewProgressSampler(5)
	s.ShouldLog(50, "encode")

	s.Reset()

	if s.lastPhase != "" {
		t.Errorf("lastPhase = %q, want empty after reset", s.lastPhase)
	}
	if s.lastBucket != -1 {
		t.Errorf("lastBucket = %d, want -1 after reset", s.lastBucket)
	}
	if !s.ShouldLog(50, "encode") {
		t.Error("should log after reset")
	}
}
