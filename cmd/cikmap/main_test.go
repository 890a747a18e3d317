package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cikmap_backend/internal/feature/cikmap/domain/entity"
	jwtmw "cikmap_backend/internal/platform/jwt"
)

// TestRunLookup は各シンボルの結果が1行1レコードのJSONで出力されることを検証します。
func TestRunLookup(t *testing.T) {
	t.Parallel()

	ciks := map[string]string{"AAPL": "0000320193"}
	fetch := func(ctx context.Context, params map[string]any, credentials map[string]string) (any, error) {
		if cik, ok := ciks[params["symbol"].(string)]; ok {
			return entity.CikMapData{Cik: &cik}, nil
		}
		return entity.CikMapData{}, nil
	}

	var buf bytes.Buffer
	err := runLookup(context.Background(), &buf, fetch, []string{"AAPL", "NOPE"})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"cik":"0000320193"}`, lines[0])
	assert.JSONEq(t, `{"cik":null}`, lines[1])
}

// TestRunLookup_Error はフェッチ失敗時にシンボル名付きのエラーを返すことを検証します。
func TestRunLookup_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("sec http 503")
	fetch := func(ctx context.Context, params map[string]any, credentials map[string]string) (any, error) {
		return nil, boom
	}

	var buf bytes.Buffer
	err := runLookup(context.Background(), &buf, fetch, []string{"AAPL"})

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "AAPL")
	assert.Empty(t, buf.String())
}

type fakeIngester struct {
	n   int
	err error
}

func (f fakeIngester) IngestAll(ctx context.Context) (int, error) { return f.n, f.err }

// TestRunIngest はインジェスト結果の件数とエラーが伝搬されることを検証します。
func TestRunIngest(t *testing.T) {
	t.Parallel()

	n, err := runIngest(context.Background(), fakeIngester{n: 42})
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	boom := errors.New("ingest fund: sec http 500")
	n, err = runIngest(context.Background(), fakeIngester{n: 10, err: boom})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 10, n)
}

// TestRunToken はトークンが出力され、シークレット未設定時はエラーになることを検証します。
func TestRunToken(t *testing.T) {
	t.Parallel()

	const secret = "cli-secret"
	var buf bytes.Buffer
	err := runToken(&buf, jwtmw.NewGenerator(secret, time.Hour), secret, "batch-job")
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(strings.TrimSpace(buf.String()), ".")))

	buf.Reset()
	err = runToken(&buf, jwtmw.NewGenerator("", time.Hour), "", "batch-job")
	assert.ErrorIs(t, err, errNoSecret)
	assert.Empty(t, buf.String())
}

type failingCloser struct{ closed bool }

func (f *failingCloser) Close() error {
	f.closed = true
	return errors.New("connection reset")
}

// TestCloseLogged はClose失敗時にエラーがログ出力されることを検証します。
func TestCloseLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := &failingCloser{}

	closeLogged(logger, c, "Redis client")

	assert.True(t, c.closed)
	assert.Contains(t, buf.String(), "Failed to close Redis client")
	assert.Contains(t, buf.String(), "connection reset")
}

// TestRootCmd_Subcommands はサブコマンドが登録されていることを検証します。
func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"lookup", "ingest", "token"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}
