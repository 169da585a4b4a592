package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.seclens.dev/seclens/cmd/seclens/commands"
	"go.seclens.dev/seclens/internal/adapters/memcache"
	"go.seclens.dev/seclens/internal/adapters/notifier"
	"go.seclens.dev/seclens/internal/adapters/settings"
	"go.seclens.dev/seclens/internal/adapters/telemetry"
	"go.seclens.dev/seclens/internal/app"
	"go.seclens.dev/seclens/internal/core/domain"
	"go.seclens.dev/seclens/internal/core/ports/mocks"
	"go.seclens.dev/seclens/internal/engine/assesscache"
	"go.seclens.dev/seclens/internal/engine/interlock"
	"go.seclens.dev/seclens/internal/engine/scancache"
	"go.seclens.dev/seclens/internal/engine/sizeguard"
	"go.uber.org/mock/gomock"
)

const settingsYAML = `version: "1"
projects:
  - projectId: "12345"
    projectName: myapp
    source: scan
    minute: "10"
  - projectId: "app-1"
    projectName: myapp
    source: assess
    minute: "5"
`

type harness struct {
	cli       *commands.CLI
	out       *bytes.Buffer
	scanAPI   *mocks.MockScanClient
	assessAPI *mocks.MockAssessClient
	config    string
}

func newHarness(t *testing.T, ctrl *gomock.Controller) *harness {
	t.Helper()

	config := filepath.Join(t.TempDir(), settings.DefaultFilename)
	require.NoError(t, os.WriteFile(config, []byte(settingsYAML), 0o600))

	h := &harness{
		out:       &bytes.Buffer{},
		scanAPI:   mocks.NewMockScanClient(ctrl),
		assessAPI: mocks.NewMockAssessClient(ctrl),
		config:    config,
	}

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	cache := memcache.New()
	console := notifier.New(notifier.WithOutput(&bytes.Buffer{}))
	store := settings.NewStore()
	guard := sizeguard.New(cache)
	tracer := telemetry.NewNoOpTracer()

	scan := scancache.New(cache, h.scanAPI, store, guard, logger, console, tracer)
	assess := assesscache.New(cache, h.assessAPI, store, guard, logger, console, tracer)
	lock := interlock.New(console, logger)
	a := app.New(scan, assess, lock, store, console, logger)

	h.cli = commands.New(a)
	h.cli.SetOutput(h.out)

	t.Cleanup(func() { a.Dispose(t.Context()) })
	return h
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	h.cli.SetArgs(append(args, "--config", h.config, "--workspace", "myapp"))
	return h.cli.Execute(t.Context())
}

func TestMode_PrintsUnoccupiedSlot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)
	require.NoError(t, h.run(t, "mode"))
	assert.Contains(t, h.out.String(), "none")
}

func TestResultsScan_PrintsTree(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)
	h.scanAPI.EXPECT().ScanResults(gomock.Any(), gomock.Any()).
		Return(domain.Envelope{
			Code:   domain.CodeOK,
			Report: &domain.Node{Label: "myapp", IssuesCount: 3},
		}, nil)

	require.NoError(t, h.run(t, "results", "scan"))

	assert.Contains(t, h.out.String(), `"label": "myapp"`)
	assert.Contains(t, h.out.String(), `"issuesCount": 3`)
}

func TestResults_RejectsUnknownMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)
	assert.Error(t, h.run(t, "results", "bogus"))
}

func TestMark_RequiresTraceFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)
	assert.Error(t, h.run(t, "mark", "Confirmed"))
}

func TestMark_PatchesThroughAssessDomain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)
	h.assessAPI.EXPECT().
		UpdateMark(gomock.Any(), gomock.Any(), domain.Mark{
			TraceIDs:  []string{"test123"},
			Status:    "Not a Problem",
			SubStatus: "FalsePositive",
		}).
		Return(domain.Envelope{Code: domain.CodeOK}, nil)

	require.NoError(t, h.run(t, "mark", "Not a Problem",
		"--trace", "test123", "--sub-status", "FalsePositive"))
}

func TestTag_RequiresATarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)
	assert.Error(t, h.run(t, "tag", "--add", "triaged"))
}

func TestAdvice_PrintsText(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)
	h.scanAPI.EXPECT().Advice(gomock.Any(), gomock.Any(), "scan-7").
		Return(domain.Envelope{Code: domain.CodeOK, Advice: "upgrade the parser"}, nil)

	require.NoError(t, h.run(t, "advice", "scan-7"))
	assert.Contains(t, h.out.String(), "upgrade the parser")
}
