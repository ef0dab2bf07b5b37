package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stsysd/collisionviz/config"
	"github.com/stsysd/collisionviz/logging"
	"github.com/stsysd/collisionviz/model"
	"github.com/stsysd/collisionviz/store"
	"github.com/stsysd/collisionviz/table"
	"github.com/stsysd/collisionviz/viz"
)

// テスト用のデータは viz パッケージのものを共有する
func testSources() viz.Sources {
	dir := filepath.Join("..", "viz", "testdata")
	return viz.Sources{
		Heatmap: filepath.Join(dir, "weekday.csv"),
		Clock:   filepath.Join(dir, "hours.csv"),
		Speed:   filepath.Join(dir, "monthly.csv"),
	}
}

func newTestServer(t *testing.T, src viz.Sources) *Server {
	t.Helper()
	layouts := config.DefaultLayouts()
	views, err := viz.LoadAll(context.Background(), viz.Options{
		Loader:   table.NewLoader(nil, nil),
		Sources:  src,
		Layouts:  layouts,
		Location: time.UTC,
	})
	require.NoError(t, err)
	t.Cleanup(func() { views.Close() })
	return NewServer(views, layouts, store.NewSessionStore(time.Hour), nil)
}

func do(t *testing.T, s *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestHandlerLogsCarryRequest(t *testing.T) {
	var buf bytes.Buffer
	layouts := config.DefaultLayouts()
	views, err := viz.LoadAll(context.Background(), viz.Options{
		Loader:   table.NewLoader(nil, nil),
		Sources:  testSources(),
		Layouts:  layouts,
		Location: time.UTC,
	})
	require.NoError(t, err)
	t.Cleanup(func() { views.Close() })
	s := NewServer(views, layouts, store.NewSessionStore(time.Hour), logging.NewWithWriter(&buf, "info"))

	// Upgrade ヘッダーなしでは接続に失敗し、警告が出る
	rr := do(t, s, http.MethodGet, "/ws/heatmap", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var warn map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["msg"] == "websocket upgrade failed" {
			warn = entry
		}
	}
	require.NotNil(t, warn, buf.String())
	assert.Equal(t, "GET", warn["method"])
	assert.Equal(t, "/ws/heatmap", warn["path"])
	assert.Equal(t, "websocket", warn["component"])
	assert.NotEmpty(t, warn["request_id"])
}

func TestHealthCheck(t *testing.T) {
	src := testSources()
	src.Clock = "testdata/missing.csv"
	s := newTestServer(t, src)

	rr := do(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	resp := decode[HealthResponse](t, rr)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]string{"heatmap": "ok", "clock": "unavailable", "speed": "ok"}, resp.Charts)
}

func TestHeatmapSVGEndpoints(t *testing.T) {
	s := newTestServer(t, testSources())

	tests := []struct {
		name   string
		target string
		code   int
		want   string
	}{
		{"default range", "/heatmap.svg", http.StatusOK, "car-body-clip"},
		{"explicit range", "/heatmap.svg?start=2019&end=2020", http.StatusOK, ">2019<"},
		{"invalid year", "/heatmap.svg?start=19", http.StatusBadRequest, "invalid start parameter"},
		{"legend", "/heatmap/legend.svg", http.StatusOK, "<svg"},
		{"range slider", "/heatmap/range.svg?start=2017&end=2019", http.StatusOK, "Years selected: 2017–2019"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, s, http.MethodGet, tt.target, nil)
			assert.Equal(t, tt.code, rr.Code)
			assert.Equal(t, "image/svg+xml", rr.Header().Get("Content-Type"))
			assert.Contains(t, rr.Body.String(), tt.want)
		})
	}
}

func TestGetFrame(t *testing.T) {
	s := newTestServer(t, testSources())

	rr := do(t, s, http.MethodGet, "/api/v0/heatmap/frame?start=2020", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var f struct {
		Range model.YearRange `json:"range"`
		Cells []struct {
			Key string `json:"key"`
		} `json:"cells"`
		YearLabels []struct {
			Key string `json:"key"`
		} `json:"year_labels"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &f))
	assert.Equal(t, model.YearRange{Start: 2020, End: 2020}, f.Range)
	assert.Len(t, f.Cells, 7)
	require.Len(t, f.YearLabels, 1)
	assert.Equal(t, "2020", f.YearLabels[0].Key)
}


func TestGetFrameWithoutRangeCoversAllYears(t *testing.T) {
	s := newTestServer(t, testSources())

	rr := do(t, s, http.MethodGet, "/api/v0/heatmap/frame", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var f struct {
		Range      model.YearRange `json:"range"`
		YearLabels []struct {
			Key string `json:"key"`
		} `json:"year_labels"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &f))
	assert.Equal(t, model.YearRange{Start: 2016, End: 2022}, f.Range)
	assert.Len(t, f.YearLabels, 7)
}
func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t, testSources())

	// セッション作成: 既定の範囲 2018–2022 への差分がすべて enter になる
	rr := do(t, s, http.MethodPost, "/api/v0/heatmap/sessions", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[SessionResponse](t, rr)
	assert.Equal(t, model.YearRange{Start: 2018, End: 2022}, created.State.Range)
	assert.Equal(t, [2]int{2016, 2022}, created.Bounds)
	require.NotNil(t, created.Diff)
	assert.Len(t, created.Diff.Cells.Enter, 34) // 2019 の金曜は欠損
	assert.Empty(t, created.Diff.Cells.Exit)

	base := "/api/v0/heatmap/sessions/" + created.SessionID.String()
	c := s.views.Heatmap.Control()

	// ブラシ中はラベルだけが変わる
	rr = do(t, s, http.MethodPost, base+"/brush", map[string]float64{"x0": c.X(2020), "x1": c.X(2021)})
	require.Equal(t, http.StatusOK, rr.Code)
	brushed := decode[BrushResponse](t, rr)
	assert.Equal(t, "Years selected: 2020–2021", brushed.State.Label)
	assert.Equal(t, model.YearRange{Start: 2018, End: 2022}, brushed.State.Range)

	// 逆向きの確定は並べ替えられる
	rr = do(t, s, http.MethodPost, base+"/commit", map[string]any{"x0": c.X(2021), "x1": c.X(2020)})
	require.Equal(t, http.StatusOK, rr.Code)
	committed := decode[CommitResponse](t, rr)
	assert.Equal(t, model.YearRange{Start: 2020, End: 2021}, committed.Commit.Range)
	assert.True(t, committed.Commit.Animate)
	assert.Empty(t, committed.Diff.Cells.Enter)
	assert.Len(t, committed.Diff.Cells.Update, 14)
	assert.Len(t, committed.Diff.Cells.Exit, 20)
	assert.ElementsMatch(t, []string{"2018", "2019", "2022"}, committed.Diff.YearLabels.Exit)

	rr = do(t, s, http.MethodPost, base+"/select-all", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	all := decode[CommitResponse](t, rr)
	assert.Equal(t, model.YearRange{Start: 2016, End: 2022}, all.Commit.Range)
	assert.False(t, all.Commit.Animate)
	assert.Len(t, all.Diff.Cells.Enter, 34)
	assert.Len(t, all.Diff.Cells.Update, 14)

	rr = do(t, s, http.MethodPost, base+"/reset", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	reset := decode[CommitResponse](t, rr)
	assert.Equal(t, model.YearRange{Start: 2018, End: 2022}, reset.Commit.Range)
	assert.Len(t, reset.Diff.Cells.Exit, 14)

	rr = do(t, s, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[SessionResponse](t, rr)
	assert.Equal(t, reset.State, got.State)
	require.NotNil(t, got.Frame)
	assert.Len(t, got.Frame.Cells, 34)

	rr = do(t, s, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = do(t, s, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSessionErrors(t *testing.T) {
	s := newTestServer(t, testSources())
	created := decode[SessionResponse](t, do(t, s, http.MethodPost, "/api/v0/heatmap/sessions", nil))
	base := "/api/v0/heatmap/sessions/" + created.SessionID.String()

	tests := []struct {
		name   string
		method string
		target string
		body   any
		code   int
	}{
		{"malformed id", http.MethodGet, "/api/v0/heatmap/sessions/nope", nil, http.StatusBadRequest},
		{"unknown id", http.MethodGet, "/api/v0/heatmap/sessions/00000000-0000-0000-0000-000000000000", nil, http.StatusNotFound},
		{"brush without x1", http.MethodPost, base + "/brush", map[string]float64{"x0": 1}, http.StatusBadRequest},
		{"commit with bad source", http.MethodPost, base + "/commit", map[string]any{"x0": 0, "x1": 10, "source": "mouse"}, http.StatusBadRequest},
		{"commit without body", http.MethodPost, base + "/commit", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, s, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.code, rr.Code)
			resp := decode[ErrorResponse](t, rr)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHeatmapUnavailable(t *testing.T) {
	src := testSources()
	src.Heatmap = "testdata/missing.csv"
	s := newTestServer(t, src)

	rr := do(t, s, http.MethodGet, "/heatmap.svg", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "Could not load CSV at testdata/missing.csv")

	rr = do(t, s, http.MethodPost, "/api/v0/heatmap/sessions", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	// 他の可視化は影響を受けない
	rr = do(t, s, http.MethodGet, "/clock.svg", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestClockEndpoints(t *testing.T) {
	s := newTestServer(t, testSources())

	rr := do(t, s, http.MethodGet, "/clock.svg?pinned=2", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, strings.Count(rr.Body.String(), "time-segment pinned"))

	rr = do(t, s, http.MethodGet, "/clock.svg?pinned=8", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, s, http.MethodGet, "/api/v0/clock?pinned=7", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[struct {
		Summary string `json:"summary"`
		Pinned  *int   `json:"pinned"`
	}](t, rr)
	assert.Equal(t, "Peak: 21:00–24:00", resp.Summary)
	require.NotNil(t, resp.Pinned)
	assert.Equal(t, 7, *resp.Pinned)
}

func TestClockSchemaMismatch(t *testing.T) {
	src := testSources()
	src.Clock = src.Speed
	s := newTestServer(t, src)

	rr := do(t, s, http.MethodGet, "/clock.svg", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "Expected at least 8 columns")

	rr = do(t, s, http.MethodGet, "/api/v0/clock", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestSpeedEndpoints(t *testing.T) {
	s := newTestServer(t, testSources())

	rr := do(t, s, http.MethodGet, "/speed.svg", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "2022")

	rr = do(t, s, http.MethodGet, "/speed.svg?year=1999", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, s, http.MethodGet, "/api/v0/speed?year=2021", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	scene := decode[struct {
		Year  int `json:"year"`
		Signs []struct {
			Speed string  `json:"speed"`
			Value float64 `json:"value"`
		} `json:"signs"`
	}](t, rr)
	assert.Equal(t, 2021, scene.Year)
	require.Len(t, scene.Signs, 3)
	assert.Equal(t, "20 miles", scene.Signs[0].Speed)
	assert.Equal(t, 15.0, scene.Signs[0].Value)

	rr = do(t, s, http.MethodGet, "/api/v0/speed/car?t=5000", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	car := decode[CarResponse](t, rr)
	assert.InDelta(t, 0.5, car.Progress, 1e-9)
	assert.NotEmpty(t, car.Path)

	rr = do(t, s, http.MethodGet, "/api/v0/speed/car?t=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, testSources())
	do(t, s, http.MethodGet, "/heatmap.svg", nil)
	do(t, s, http.MethodPost, "/api/v0/heatmap/sessions", nil)

	rr := do(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `collisionviz_renders_total{chart="heatmap",outcome="ok"} 2`)
	assert.Contains(t, body, `collisionviz_chart_available{chart="clock",reason="ok"} 1`)
	assert.Contains(t, body, "collisionviz_sessions 1")
	assert.Contains(t, body, `route="/heatmap.svg"`)
}

func TestHeatmapWebSocket(t *testing.T) {
	s := newTestServer(t, testSources())
	ts := httptest.NewServer(s)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/heatmap"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var hello ServerMessage
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, MessageSession, hello.Type)
	require.NotNil(t, hello.Session)
	assert.Equal(t, 1, s.sessions.Len())

	c := s.views.Heatmap.Control()
	x0, x1 := c.X(2022), c.X(2022)
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MessageCommit, X0: &x0, X1: &x1}))

	var reply ServerMessage
	require.NoError(t, conn.ReadJSON(&reply))
	require.Equal(t, MessageCommit, reply.Type)
	assert.Equal(t, model.YearRange{Start: 2022, End: 2022}, reply.Commit.Commit.Range)
	assert.Len(t, reply.Commit.Diff.Cells.Update, 7)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "zoom"}))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, MessageError, reply.Type)
	assert.Equal(t, http.StatusBadRequest, reply.Error.Code)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MessageReset}))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, model.YearRange{Start: 2018, End: 2022}, reply.Commit.Commit.Range)

	// 切断するとセッションが削除される
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	assert.Eventually(t, func() bool { return s.sessions.Len() == 0 }, time.Second, 10*time.Millisecond)
}
