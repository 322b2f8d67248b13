package script

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udu-dev/udu/pkg/config"
	"github.com/udu-dev/udu/pkg/decode"
	"github.com/udu-dev/udu/pkg/host"
	"github.com/udu-dev/udu/pkg/report"
	"github.com/udu-dev/udu/pkg/sink"
	"github.com/udu-dev/udu/pkg/testutil"
	"github.com/udu-dev/udu/pkg/udu"
)

type fixture struct {
	runner *Runner
	clock  *clock.Mock
	msgs   *testutil.MessageRecorder
	errs   *testutil.ErrorRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		clock: clock.NewMock(),
		msgs:  &testutil.MessageRecorder{},
		errs:  &testutil.ErrorRecorder{},
	}
	d := udu.New(config.Default(), host.Binding{
		Name:     "test",
		Clock:    f.clock,
		Messages: f.msgs,
		Errors:   f.errs,
		Overlay:  sink.NewMemoryOverlay(),
	})
	f.msgs.Reset()
	f.runner = NewRunner(d)
	f.runner.Sleep = func(_ context.Context, d time.Duration) error {
		f.clock.Add(d)
		return nil
	}
	return f
}

func parse(t *testing.T, doc string) *Scenario {
	t.Helper()
	v, err := decode.YAML([]byte(doc))
	require.NoError(t, err)
	sc, err := Parse(v)
	require.NoError(t, err)
	return sc
}

func TestParse(t *testing.T) {
	sc := parse(t, `
name: demo
steps:
  - op: start
    args: ["outer", 0]
  - op: finish
  - op: sleep
    args: 5ms
`)
	assert.Equal(t, "demo", sc.Name)
	require.Len(t, sc.Steps, 3)
	assert.Equal(t, Step{Op: OpStart, Args: []any{"outer", 0}}, sc.Steps[0])
	assert.Equal(t, Step{Op: OpFinish}, sc.Steps[1])
	assert.Equal(t, []any{"5ms"}, sc.Steps[2].Args)

	bare := parse(t, "- op: point\n- op: point\n")
	assert.Empty(t, bare.Name)
	assert.Len(t, bare.Steps, 2)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "no steps", doc: "name: x", want: "steps must be a list"},
		{name: "scalar step", doc: "- 1", want: "step 1: invalid scenario: a step must be an object"},
		{name: "op not string", doc: "- op: point\n- op: 3", want: "step 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := decode.YAML([]byte(tt.doc))
			require.NoError(t, err)
			_, err = Parse(v)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidScenario)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/s/ok.yaml", []byte("steps:\n  - op: point\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/s/bad.json", []byte(`{"steps": 1}`), 0o644))

	sc, err := Load(fs, "/s/ok.yaml")
	require.NoError(t, err)
	assert.Len(t, sc.Steps, 1)

	_, err = Load(fs, "/s/bad.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load scenario /s/bad.json")

	_, err = Load(fs, "/s/missing.yaml")
	assert.Error(t, err)
}

func TestRunTiming(t *testing.T) {
	f := newFixture(t)
	sc := parse(t, `
- op: point
- op: start
  args: ["outer", 0]
- op: start
  args: ["", 1]
- op: sleep
  args: [2]
- op: finish
  args: [1]
- op: sleep
  args: ["3ms"]
- op: finish
- op: point
  args: ["end"]
`)
	outcomes, err := f.runner.Run(context.Background(), sc)
	require.NoError(t, err)

	require.Len(t, outcomes, 4)
	assert.Equal(t, Outcome{Step: 1, Op: OpPoint}, outcomes[0])
	assert.Equal(t, 5, outcomes[1].Step)
	assert.InDelta(t, 2.0, outcomes[1].Millis, 1e-9)
	assert.InDelta(t, 5.0, outcomes[2].Millis, 1e-9)
	assert.Equal(t, Outcome{Step: 8, Op: OpPoint, Name: "end", Millis: 5}, outcomes[3])

	assert.Equal(t, []string{
		"[udu] Point RTT | 0 ms | Starting point.",
		"[udu] Single RTT | 5.00 ms | outer",
		"[udu] Point RTT | +5.00 ms | end",
	}, f.msgs.Texts())
	assert.Empty(t, f.errs.Codes())
}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name string
		step string
		want report.Code
	}{
		{name: "point name", step: "{op: point, args: [123]}", want: report.CodeRTTPoint1},
		{name: "start name", step: "{op: start, args: [123]}", want: report.CodeRTTStart1},
		{name: "start level type", step: `{op: start, args: ["a", "x"]}`, want: report.CodeRTTStart2},
		{name: "start level fraction", step: `{op: start, args: ["a", 1.5]}`, want: report.CodeRTTStart3},
		{name: "start level range", step: `{op: start, args: ["a", 3]}`, want: report.CodeRTTStart3},
		{name: "finish level type", step: `{op: finish, args: ["x"]}`, want: report.CodeRTTFinish1},
		{name: "finish missing level", step: "{op: finish, args: [2]}", want: report.CodeRTTFinish2},
		{name: "average no fn", step: "{op: average}", want: report.CodeRTTAverage1},
		{name: "average fn type", step: `{op: average, args: ["fn", 3]}`, want: report.CodeRTTAverage1},
		{name: "average bad body", step: "{op: average, args: [[1], 3]}", want: report.CodeRTTAverage1},
		{name: "average cycles type", step: `{op: average, args: [[], "3"]}`, want: report.CodeRTTAverage2},
		{name: "average cycles zero", step: "{op: average, args: [[], 0]}", want: report.CodeRTTAverage2},
		{name: "average name", step: "{op: average, args: [[], 3, 5]}", want: report.CodeRTTAverage3},
		{name: "average each", step: `{op: average, args: [[], 3, "n", "yes"]}`, want: report.CodeRTTAverage4},
		{name: "sleep", step: `{op: sleep, args: ["soon"]}`, want: report.CodeScriptSleep},
		{name: "negative sleep", step: "{op: sleep, args: [-1]}", want: report.CodeScriptSleep},
		{name: "unknown op", step: "{op: dance}", want: report.CodeScriptOp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			outcomes, err := f.runner.Run(context.Background(), parse(t, "- "+tt.step))
			require.NoError(t, err)

			assert.Empty(t, outcomes)
			assert.Zero(t, f.msgs.Len())
			assert.Equal(t, []report.Code{tt.want}, f.errs.Codes())
			var verr *report.ValidationError
			assert.ErrorAs(t, f.errs.Reports()[0].Err, &verr)
		})
	}
}

func TestRunAverage(t *testing.T) {
	f := newFixture(t)
	sc := parse(t, `
- op: average
  args: [[{op: sleep, args: ["2ms"]}], 3, "tick", true]
`)
	outcomes, err := f.runner.Run(context.Background(), sc)
	require.NoError(t, err)

	require.Len(t, outcomes, 1)
	assert.Equal(t, "tick", outcomes[0].Name)
	assert.InDelta(t, 2.0, outcomes[0].Millis, 1e-9)
	assert.Equal(t, []string{
		"[udu] Average RTT | 2.00 ms | tick\n" +
			"  iteration 1: 2.00 ms\n" +
			"  iteration 2: 2.00 ms\n" +
			"  iteration 3: 2.00 ms",
	}, f.msgs.Texts())
}

func TestRunAverageBodyError(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("boom")
	calls := 0
	f.runner.Sleep = func(context.Context, time.Duration) error {
		calls++
		return boom
	}

	_, err := f.runner.Run(context.Background(), parse(t, `- {op: average, args: [[{op: sleep, args: [1]}], 5]}`))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls, "later iterations skip the body")
}

func TestRunStoppedSkipsValidation(t *testing.T) {
	f := newFixture(t)
	outcomes, err := f.runner.Run(context.Background(), parse(t, `
- op: stop
- op: point
  args: [123]
- op: log
  args: ["hidden"]
- op: resume
- op: point
  args: ["p"]
`))
	require.NoError(t, err)
	assert.Empty(t, f.errs.Codes())
	require.Len(t, outcomes, 1)
	assert.Equal(t, 5, outcomes[0].Step)
	assert.Equal(t, []string{"[udu] Point RTT | 0 ms | p"}, f.msgs.Texts())
}

func TestRunLog(t *testing.T) {
	f := newFixture(t)
	_, err := f.runner.Run(context.Background(), parse(t, `
- op: log
  args: [{a: 1}, "cfg"]
- op: log
`))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"[udu] Type: Object | cfg\nValue: {\n  a: 1\n}",
		"[udu] Type: Undefined\nValue: Undefined",
	}, f.msgs.Texts())
}

func TestRunCanceled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := f.runner.Run(ctx, parse(t, "- op: point"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, outcomes)
	assert.Zero(t, f.msgs.Len())
}

func TestDefaultSleepHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleep(ctx, time.Hour), context.Canceled)
	assert.NoError(t, sleep(context.Background(), time.Microsecond))
}
