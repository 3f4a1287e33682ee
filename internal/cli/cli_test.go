package cli_test

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"valuation_service/internal/cli"
	"valuation_service/internal/domain/service/pricing"
	"valuation_service/internal/domain/service/valuation"
	"valuation_service/internal/server"
	"valuation_service/pkg/logx"
	"valuation_service/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const istanbulRequest = `{
	"property_type": "daire",
	"features": {"sq_meters": 100, "room_count": 2, "building_age": 0},
	"location": {"city": "istanbul", "district": "Kadikoy"}
}`

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	stdout, _, err := runWithLogs(t, stdin, args...)

	return stdout, err
}

func runWithLogs(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := cli.NewRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stderr)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func newServerURL(t *testing.T) string {
	t.Helper()

	svc := valuation.NewService(pricing.NewDefaultEngine(), valuation.NewMetrics(nil, "test"))
	srv := httptest.NewServer(server.NewRouter(
		server.NewServer(server.NewValuationServer(svc, 0)),
		server.RouterOptions{Masker: logx.NewNopSensitiveDataMasker()},
	))
	t.Cleanup(srv.Close)

	return srv.URL
}

func TestEstimateText(t *testing.T) {
	rq := require.New(t)

	out, err := run(t, "", "estimate", "--file", writeFile(t, istanbulRequest))
	rq.NoError(err)
	rq.Contains(out, "2475000.00")
	rq.Contains(out, "2103750.00 - 2846250.00")
	rq.Contains(out, "0.85")
	rq.Contains(out, "1.0.0")
}

func TestVerboseLogsShareOneEncoder(t *testing.T) {
	rq := require.New(t)

	path := writeFile(t, istanbulRequest)

	_, logs, err := runWithLogs(t, "", "estimate", "--file", path)
	rq.NoError(err)
	rq.Empty(logs)

	_, logs, err = runWithLogs(t, "", "estimate", "--verbose", "--file", path)
	rq.NoError(err)
	rq.Contains(logs, "DEBUG\tpricing locally")
	rq.Contains(logs, "INFO\tvaluation requested")
	rq.Contains(logs, "DEBUG\testimate done")
}

func TestEstimateJSONFromStdin(t *testing.T) {
	rq := require.New(t)

	out, err := run(t, istanbulRequest, "estimate", "--file", "-", "--format", "json")
	rq.NoError(err)

	var got rest.ValuationResponse
	rq.NoError(json.Unmarshal([]byte(out), &got))
	rq.InDelta(2475000.0, got.EstimatedPrice, 1e-6)
}

func TestEstimateErrors(t *testing.T) {
	testCases := []struct {
		name string
		args func(t *testing.T) []string
	}{
		{
			name: "Invalid request",
			args: func(t *testing.T) []string {
				return []string{"estimate", "--file", writeFile(t, `{"property_type":"daire"}`)}
			},
		},
		{
			name: "Missing file",
			args: func(*testing.T) []string {
				return []string{"estimate", "--file", "/nonexistent/request.json"}
			},
		},
		{
			name: "Unknown format",
			args: func(t *testing.T) []string {
				return []string{"estimate", "--file", writeFile(t, istanbulRequest), "--format", "xml"}
			},
		},
		{
			name: "Non-finite price",
			args: func(t *testing.T) []string {
				return []string{"estimate", "--file", writeFile(t, strings.Replace(istanbulRequest, "100", "1e308", 1))}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, "", tc.args(t)...)
			require.Error(t, err)
		})
	}
}

func TestBatchLocalAndServerAgree(t *testing.T) {
	rq := require.New(t)

	input := writeFile(t, `[`+istanbulRequest+`, {"property_type": "villa"}, 7]`)

	local, err := run(t, "", "batch", "--file", input, "--format", "json")
	rq.NoError(err)

	remote, err := run(t, "", "batch", "--file", input, "--format", "json", "--server", newServerURL(t))
	rq.NoError(err)

	var localResp, remoteResp rest.BatchValuationResponse
	rq.NoError(json.Unmarshal([]byte(local), &localResp))
	rq.NoError(json.Unmarshal([]byte(remote), &remoteResp))

	rq.Equal(localResp, remoteResp)
	rq.Equal(3, localResp.TotalProcessed)
	rq.Equal(1, localResp.Successful)
	rq.Equal(2, localResp.Failed)
}

func TestBatchText(t *testing.T) {
	rq := require.New(t)

	out, err := run(t, "", "batch", "--file", writeFile(t, `[`+istanbulRequest+`, {}]`))
	rq.NoError(err)
	rq.Contains(out, "2475000.00")
	rq.Contains(out, "failed")
	rq.Contains(out, "1 successful, 1 failed")
}

func TestBatchRejectsNonArray(t *testing.T) {
	_, err := run(t, "", "batch", "--file", writeFile(t, istanbulRequest))
	require.Error(t, err)
}

func TestTables(t *testing.T) {
	rq := require.New(t)

	out, err := run(t, "", "tables")
	rq.NoError(err)
	rq.Contains(out, "istanbul, ankara, izmir, antalya, bursa")
	rq.Contains(out, "daire, villa")
	rq.Contains(out, "floor")

	remote, err := run(t, "", "tables", "--server", newServerURL(t))
	rq.NoError(err)
	rq.Equal(out, remote)
}
