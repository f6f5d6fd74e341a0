package format

import "testing"

func TestFloatWidth_String(t *testing.T) {
	cases := map[FloatWidth]string{
		Width16:        "binary16",
		Width32:        "binary32",
		Width64:        "binary64",
		FloatWidth(99): "unknown",
	}

	for w, want := range cases {
		if got := w.String(); got != want {
			t.Errorf("FloatWidth(%d).String() = %q, want %q", w, got, want)
		}
	}
}

func TestCompressionType_String(t *testing.T) {
	cases := map[CompressionType]string{
		CompressionNone:     "None",
		CompressionZstd:     "Zstd",
		CompressionS2:       "S2",
		CompressionLZ4:      "LZ4",
		CompressionType(99): "Unknown",
	}

	for c, want := range cases {
		if got := c.String(); got != want {
			t.Errorf("CompressionType(%d).String() = %q, want %q", c, got, want)
		}
	}
}
