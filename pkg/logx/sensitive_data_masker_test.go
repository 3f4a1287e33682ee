package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"valuation_service/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Coordinates",
			input:  []byte(`{"city":"istanbul","latitude":41.0082,"longitude":28.9784}`),
			output: []byte(`{"city":"istanbul","latitude":"[MASKED]","longitude":"[MASKED]"}`),
		},
		{
			name:   "Negative coordinates with spaces",
			input:  []byte(`{"latitude": -33.86, "longitude": -151.2 }`),
			output: []byte(`{"latitude": "[MASKED]", "longitude": "[MASKED]" }`),
		},
		{
			name:   "Null coordinates are left alone",
			input:  []byte(`{"latitude":null,"longitude":null}`),
			output: []byte(`{"latitude":null,"longitude":null}`),
		},
		{
			name:   "Password capital letter",
			input:  []byte(`{"hello":"world","Password":"abc123"}`),
			output: []byte(`{"hello":"world","Password":"[MASKED]"}`),
		},
		{
			name:   "Email",
			input:  []byte(`{"owner": {"email": "john@doe.com"}, "city": "izmir"}`),
			output: []byte(`{"owner": {"email": "[MASKED]"}, "city": "izmir"}`),
		},
		{
			name:   "Bearer token",
			input:  []byte("GET / HTTP/1.1\r\nAuthorization: Bearer abc.def\r\n"),
			output: []byte("GET / HTTP/1.1\r\nAuthorization: Bearer [MASKED]\r\n"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
