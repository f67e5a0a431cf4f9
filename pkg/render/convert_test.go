package render

import (
	"context"
	"testing"

	"github.com/matzehuels/visigraph/pkg/errors"
)

func TestConvertWithoutLibrsvg(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)

	tests := []struct {
		name string
		run  func() ([]byte, error)
		code errors.Code
	}{
		{"pdf", func() ([]byte, error) { return ToPDF(context.Background(), svg) }, errors.ErrCodeUnsupported},
		{"png", func() ([]byte, error) { return ToPNG(context.Background(), svg, 2) }, errors.ErrCodeUnsupported},
		{"png bad scale", func() ([]byte, error) { return ToPNG(context.Background(), svg, 0) }, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.run()
			if data != nil {
				t.Error("failed conversion returned data")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}
