package resume

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/resumic/pkg/llm"
)

type fakeModel struct {
	outputs []string
	err     error
	calls   int
	lastReq llm.Request
}

func (f *fakeModel) Generate(_ context.Context, req llm.Request) (string, error) {
	f.lastReq = req
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	i := f.calls - 1
	if i >= len(f.outputs) {
		i = len(f.outputs) - 1
	}
	return f.outputs[i], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const validDraftJSON = `{"name":"Jane Doe","email":"jane@example.com","skills":["Go"]}`

func TestExtractLinkedInRepairsFencedOutput(t *testing.T) {
	m := &fakeModel{outputs: []string{
		"Here is the data:\n```json\n" + `{"name":"Jane Doe","email":"jane@example.com","experience":[{"company":"Acme","position":"Eng","duration":"2020-2022"}]` + "\n```",
	}}
	e := NewExtractor(m, testLogger())

	d, err := e.ExtractLinkedIn(context.Background(), "jane-doe", `{"firstName":"Jane"}`)
	require.NoError(t, err)

	assert.Equal(t, 1, m.calls)
	assert.Equal(t, "Jane Doe", d.Name)
	require.Len(t, d.Experience, 1)
	assert.Equal(t, "jane-doe", d.SourceRef)
}

func TestExtractRetriesOnMalformedOutput(t *testing.T) {
	m := &fakeModel{outputs: []string{"no json here", "still prose", validDraftJSON}}
	e := NewExtractor(m, testLogger())

	d, err := e.ExtractLinkedIn(context.Background(), "jane", "{}")
	require.NoError(t, err)
	assert.Equal(t, 3, m.calls)
	assert.Equal(t, "Jane Doe", d.Name)
}

func TestExtractFailsAfterThreeBadAttempts(t *testing.T) {
	m := &fakeModel{outputs: []string{"garbage", "garbage", "final garbage"}}
	e := NewExtractor(m, testLogger())

	_, err := e.ExtractLinkedIn(context.Background(), "jane", "{}")
	require.Error(t, err)
	assert.Equal(t, 3, m.calls)

	var xerr *ExtractError
	require.True(t, errors.As(err, &xerr))
	assert.Equal(t, 3, xerr.Attempts)
	assert.Equal(t, "final garbage", xerr.Raw)
	assert.NotContains(t, xerr.Error(), "final garbage", "raw output stays out of user-facing messages")
}

func TestExtractRetriesOnValidationFailure(t *testing.T) {
	m := &fakeModel{outputs: []string{`{"summary":"no name or email"}`, validDraftJSON}}
	e := NewExtractor(m, testLogger())

	_, err := e.ExtractLinkedIn(context.Background(), "jane", "{}")
	require.NoError(t, err)
	assert.Equal(t, 2, m.calls)
}

func TestExtractDoesNotRetryProviderErrors(t *testing.T) {
	m := &fakeModel{err: &llm.Error{Kind: llm.KindCredential, Status: 401, Msg: "bad key"}}
	e := NewExtractor(m, testLogger())

	_, err := e.ExtractLinkedIn(context.Background(), "jane", "{}")
	require.Error(t, err)
	assert.Equal(t, 1, m.calls, "credential failures are not retried")

	var lerr *llm.Error
	assert.True(t, errors.As(err, &lerr))
}

func TestExtractRepoAnalysisRepairsFencedOutput(t *testing.T) {
	m := &fakeModel{outputs: []string{
		"```json\n" + `{"complexity":7,"impact":6,"skills":["Go","Postgres"],"atsPoints":["built a REST API"],"analysis":"solid service"}` + "\n```",
	}}
	e := NewExtractor(m, testLogger())

	a, err := e.ExtractRepoAnalysis(context.Background(), RepoFacts{Name: "svc", Language: "Go", Stars: 5})
	require.NoError(t, err)

	assert.Equal(t, 1, m.calls)
	assert.Contains(t, m.lastReq.Prompt, "svc")
	assert.InDelta(t, 7, a.Complexity, 0.001)
	assert.Equal(t, []string{"Go", "Postgres"}, a.Skills)
	assert.Equal(t, []string{"built a REST API"}, a.ATSPoints)
	assert.Equal(t, "solid service", a.Analysis)
}

func TestExtractRepoAnalysisRetriesOnBadStructure(t *testing.T) {
	m := &fakeModel{outputs: []string{
		`{"complexity":99,"impact":5,"skills":[],"atsPoints":[],"analysis":"x"}`,
		`{"complexity":5,"impact":5,"skills":[],"atsPoints":[],"analysis":"fine"}`,
	}}
	e := NewExtractor(m, testLogger())

	a, err := e.ExtractRepoAnalysis(context.Background(), RepoFacts{Name: "svc"})
	require.NoError(t, err)
	assert.Equal(t, 2, m.calls, "out-of-range score is a validation failure, retried")
	assert.Equal(t, "fine", a.Analysis)
}

func TestExtractRepoAnalysisFailsAfterExhaustion(t *testing.T) {
	m := &fakeModel{outputs: []string{"```json\n{\"broken\": "}}
	e := NewExtractor(m, testLogger())

	_, err := e.ExtractRepoAnalysis(context.Background(), RepoFacts{Name: "svc"})
	require.Error(t, err)
	assert.Equal(t, 3, m.calls)

	var xerr *ExtractError
	require.True(t, errors.As(err, &xerr))
	assert.NotContains(t, xerr.Error(), "broken", "raw output stays out of user-facing messages")
}

func TestExtractResumeSendsParsedText(t *testing.T) {
	data := makeDocx(t, `<w:document><w:body><w:p><w:r><w:t>Jane Doe, Engineer at Acme</w:t></w:r></w:p></w:body></w:document>`)
	m := &fakeModel{outputs: []string{validDraftJSON}}
	e := NewExtractor(m, testLogger())

	d, err := e.ExtractResume(context.Background(), "jane.docx", data)
	require.NoError(t, err)

	assert.Contains(t, m.lastReq.Prompt, "Jane Doe, Engineer at Acme")
	assert.Nil(t, m.lastReq.File)
	assert.Equal(t, "jane.docx", d.SourceRef)
}

func TestExtractResumeFallsBackToInlineFile(t *testing.T) {
	raw := []byte{0xD0, 0xCF, 0x11, 0xE0, 0x01}
	m := &fakeModel{outputs: []string{validDraftJSON}}
	e := NewExtractor(m, testLogger())

	_, err := e.ExtractResume(context.Background(), "jane.doc", raw)
	require.NoError(t, err)

	require.NotNil(t, m.lastReq.File)
	assert.Equal(t, "application/msword", m.lastReq.File.MIMEType)
	assert.Equal(t, raw, m.lastReq.File.Data)
}

func TestExtractResumeRejectsUnsupportedFormat(t *testing.T) {
	m := &fakeModel{outputs: []string{validDraftJSON}}
	e := NewExtractor(m, testLogger())

	_, err := e.ExtractResume(context.Background(), "jane.txt", []byte("text"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Zero(t, m.calls)
}
