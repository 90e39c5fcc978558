package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"footdash/dataset"
	"footdash/report"
	"footdash/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testCSV = `Name,Position,Age Lev,year,Team,Base Salary,Min,Birth Year,Player Id,G,xG,Tackles,Inter
A,Forward,24-26,2022,Spurs,5000,1500,1997,11,10,8.1,5,2
B,Defender,27-29,2022,Hammers,9000,2500,1994,22,1,0.4,60,31
C,Forward,24-26,2022,Villa,3000,1800,1998,33,6,5.5,9,4
D,Libero,30-32,2022,Nowhere,100,1200,1991,44,0,0,0,0
`

func newTestServer(t *testing.T) *server {
	t.Helper()
	rows, err := dataset.ReadCSV(strings.NewReader(testCSV))
	require.NoError(t, err)
	return newServer(report.New(dataset.New(rows), report.DefaultOptions()), zap.NewNop())
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestReportPageDefault(t *testing.T) {
	h := newTestServer(t).routes()
	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	// default player is absent from the data, so the best paid player is preselected
	assert.Contains(t, body, `<option value="B" selected>B</option>`)
	assert.Less(t, strings.Index(body, `value="B"`), strings.Index(body, `value="A"`))
	assert.Contains(t, body, `class="collapse"`)
	assert.Contains(t, body, `id="offensive-graph"`)
	assert.Contains(t, body, `id="defensive-graph"`)
	assert.Contains(t, body, "<svg")
}

func TestReportPageEvents(t *testing.T) {
	h := newTestServer(t).routes()

	rec := get(t, h, "/?player=B&pick=A&toggle=1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<option value="A" selected>A</option>`)
	assert.Contains(t, body, `class="collapse show"`)
	assert.Contains(t, body, "Name: A")
	assert.Contains(t, body, "£5,000")

	rec = get(t, h, "/?player=A&open=1&toggle=1")
	assert.Contains(t, rec.Body.String(), `class="collapse"`)

	rec = get(t, h, "/?player=A&side=o&metric=xG")
	assert.Contains(t, rec.Body.String(), `name="off" value="xG"`)
}

func TestReportPageUnknownPlayer(t *testing.T) {
	h := newTestServer(t).routes()
	rec := get(t, h, "/?player=Nobody")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No data for &#34;Nobody&#34;")
}

func TestReportPageUnknownPosition(t *testing.T) {
	h := newTestServer(t).routes()
	rec := get(t, h, "/?player=D")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No metrics are defined for position")
}

func TestFragments(t *testing.T) {
	h := newTestServer(t).routes()

	rec := get(t, h, "/fragments/profile?player=A")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Position: Forward")

	rec = get(t, h, "/fragments/profile?player=Nobody")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, h, "/fragments/analysis?player=A&side=d&metric=Inter")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<svg")

	rec = get(t, h, "/fragments/analysis?player=A&side=sideways")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFragmentKeepsPageState(t *testing.T) {
	h := newTestServer(t).routes()

	rec := get(t, h, "/?player=A&open=1&def=Inter")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-fragment="/fragments/analysis?def=Inter&amp;metric=xG&amp;off=G&amp;open=1&amp;player=A&amp;side=o"`)

	rec = get(t, h, "/fragments/analysis?def=Inter&metric=xG&off=G&open=1&player=A&side=o")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `href="/?def=Inter&amp;metric=G&amp;off=xG&amp;open=1&amp;player=A&amp;side=o"`)
	assert.Contains(t, body, `data-fragment="/fragments/analysis?def=Inter&amp;metric=xA&amp;off=xG&amp;open=1&amp;player=A&amp;side=o"`)
	assert.Contains(t, body, `btn-primary">xG</a>`)
	assert.NotContains(t, body, "metric=Clear")

	// an invalid pick falls back without touching the other side
	rec = get(t, h, "/fragments/analysis?def=Inter&open=1&player=A&side=o&metric=Clear")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `btn-primary">G</a>`)
	assert.Contains(t, rec.Body.String(), "def=Inter&amp;metric=xG&amp;off=G&amp;open=1")
}

func TestChartLabelsEscaped(t *testing.T) {
	csv := testCSV + "<script>alert(1)</script>,Forward,24-26,2022,Evil FC,99000,2000,1997,55,3,2.5,1,1\n"
	rows, err := dataset.ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	h := newServer(report.New(dataset.New(rows), report.DefaultOptions()), zap.NewNop()).routes()

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<svg")
	assert.NotContains(t, body, "<script>alert(1)")
	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")

	rec = get(t, h, "/fragments/analysis?player=%3Cscript%3Ealert(1)%3C%2Fscript%3E&side=d")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<script>alert(1)")
}

func TestAPI(t *testing.T) {
	h := newTestServer(t).routes()

	rec := get(t, h, "/api/players")
	require.Equal(t, http.StatusOK, rec.Code)
	var players playersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &players))
	assert.Equal(t, []string{"B", "A", "C", "D"}, players.Players)
	assert.Equal(t, "B", players.Default)

	rec = get(t, h, "/api/players/A")
	require.Equal(t, http.StatusOK, rec.Code)
	var profile map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "Forward", profile["position"])
	assert.Contains(t, profile["image_url"], "/11.jpg")

	rec = get(t, h, "/api/players/A/curve?side=o&metric=G")
	require.Equal(t, http.StatusOK, rec.Code)
	var c report.Curve
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Len(t, c.Baseline, len(dataset.AgeOrder()))
	assert.Equal(t, 8.0, c.Baseline[dataset.BucketIndex("24-26")].Value)
	assert.Len(t, c.Overlay, 1)

	rec = get(t, h, "/api/players/A/curve?side=o&metric=Clear")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, h, "/api/players/Nobody/curve?side=o")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, h, "/api/players/D/curve?side=o")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t).routes(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","rows":4}`, rec.Body.String())
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "players.csv")
	require.NoError(t, os.WriteFile(src, []byte(testCSV), 0o644))
	dbPath := filepath.Join(dir, "footdash.db")
	t.Setenv("DATABASE_URL", dbPath)
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"import", src})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "imported 4 rows")

	ctx := context.Background()
	st, err := store.Open(ctx, dbPath)
	require.NoError(t, err)
	defer st.Close()

	rep, err := loadReport(ctx, st, report.DefaultOptions(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C", "D"}, rep.TopPlayers())
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MIN_MINUTES", "500")
	t.Setenv("TOP_N", "10")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("RAILWAY_VOLUME_MOUNT_PATH", "/data")

	cfg := loadConfig()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 500.0, cfg.Report.MinMinutes)
	assert.Equal(t, 10, cfg.Report.TopN)
	assert.Equal(t, filepath.Join("/data", "footdash.db"), cfg.DatabaseURL)
}

func TestLoadConfigRejectsEmptySelector(t *testing.T) {
	for _, v := range []string{"0", "-5", "many"} {
		t.Setenv("TOP_N", v)
		assert.Equal(t, report.DefaultOptions().TopN, loadConfig().Report.TopN, "TOP_N=%s", v)
	}
}
