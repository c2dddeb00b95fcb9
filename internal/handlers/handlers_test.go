package handlers

import (
	"bytes"
	"encoding/json"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"deptsite/internal/dataset"
	"deptsite/internal/storage"
	"deptsite/web"
)

var fixtureSheets = map[string]string{
	"gameCareers": "id,name,desc,tags\n" +
		"eng,Engineer,Builds things,tech; build\n" +
		"med,Doctor,Heals people,care\n",
	"gameMissions": "scenario_id,scenario_title,scenario_order,mission_id,mission_order,title,scene\n" +
		"s1,First story,1,m1,1,Intro,You arrive on campus.\n" +
		"s1,First story,1,m2,2,Court,A case comes in.\n",
	"gameOptions": "mission_id,option_id,option_order,label,desc,scores\n" +
		"m1,a,1,Build,Make a prototype,eng:3;med:1\n" +
		"m1,b,2,Argue,Debate it,law:2\n" +
		"m2,c,1,Heal,Help out,med:1\n",
	"facultyProfiles": "name,role,areas,open_for_student_research,publications\n" +
		"Grace Hopper,Professor,compilers; systems,yes,Paper A||Paper B\n" +
		"Alan Turing,Lecturer,ai,no,\n",
	"newsItems": "year,category,badge_label,title,summary\n" +
		"2024,research,Research,New lab opens,Big news\n" +
		"2023,events,Event,Open day,Come along\n",
	"pageCopy": "page,block,title,text\n" +
		"game,hero,Find your path,\n",
}

func newTestApp(t *testing.T) (*App, http.Handler) {
	t.Helper()
	return newTestAppWith(t, nil)
}

// newTestAppWith serves fixtureSheets with the given sheets replaced.
func newTestAppWith(t *testing.T, sheets map[string]string) (*App, http.Handler) {
	t.Helper()
	dir := t.TempDir()
	for name, body := range fixtureSheets {
		if override, ok := sheets[name]; ok {
			body = override
		}
		if err := os.WriteFile(filepath.Join(dir, name+".csv"), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	cache := dataset.NewCache(dataset.FileSource{Dir: dir}, storage.NewMemoryStore(), dataset.WithLogger(quiet))
	app, err := NewApp(web.FS, cache, time.Hour)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	app.log = quiet
	return app, app.Routes(web.Static())
}

func do(h http.Handler, method, target string, form url.Values, cookies []*http.Cookie, header map[string]string) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPages(t *testing.T) {
	_, h := newTestApp(t)
	cases := []struct {
		path    string
		want    []string
		notWant []string
	}{
		{path: "/", want: []string{"Welcome to the department", "No testimonials yet."}},
		{path: "/introduction", want: []string{"Introduction"}},
		{path: "/programmes", want: []string{"Sciences", "Policy"}},
		{path: "/faculty", want: []string{"Grace Hopper", "Alan Turing", "Open for student research", "Paper B"}},
		{path: "/faculty?area=ai", want: []string{"Alan Turing"}, notWant: []string{"Grace Hopper"}},
		{path: "/research", want: []string{"Research areas"}},
		{path: "/news?year=2023", want: []string{"Open day"}, notWant: []string{"New lab opens"}},
		{path: "/gallery", want: []string{"No images yet."}},
		{path: "/projects", want: []string{"Student projects", "No projects match these filters."}},
		{path: "/careers", want: []string{"Career pathways"}},
	}
	for _, tc := range cases {
		rec := do(h, http.MethodGet, tc.path, nil, nil, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s = %d, body: %s", tc.path, rec.Code, rec.Body.String())
		}
		body := rec.Body.String()
		for _, s := range tc.want {
			if !strings.Contains(body, s) {
				t.Errorf("GET %s missing %q", tc.path, s)
			}
		}
		for _, s := range tc.notWant {
			if strings.Contains(body, s) {
				t.Errorf("GET %s should not contain %q", tc.path, s)
			}
		}
	}

	if rec := do(h, http.MethodGet, "/nope", nil, nil, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("GET /nope = %d, want 404", rec.Code)
	}
}

func TestGameFlow(t *testing.T) {
	_, h := newTestApp(t)

	rec := do(h, http.MethodGet, "/game", nil, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /game = %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 || cookies[0].Name != sessionCookieName {
		t.Fatalf("no session cookie set: %v", cookies)
	}
	body := rec.Body.String()
	for _, s := range []string{"Find your path", "First story", "Start"} {
		if !strings.Contains(body, s) {
			t.Fatalf("game page missing %q", s)
		}
	}

	rec = do(h, http.MethodPost, "/game/start", url.Values{}, cookies, nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/game" {
		t.Fatalf("POST /game/start = %d %q", rec.Code, rec.Header().Get("Location"))
	}
	body = do(h, http.MethodGet, "/game", nil, cookies, nil).Body.String()
	if !strings.Contains(body, "Mission 1 of 2") || !strings.Contains(body, "You arrive on campus.") {
		t.Fatalf("mission view missing progress or scene:\n%s", body)
	}

	// A choice for a mission that is not current is ignored.
	do(h, http.MethodPost, "/game/choose", url.Values{"mission": {"m2"}, "option": {"0"}}, cookies, nil)
	body = do(h, http.MethodGet, "/game", nil, cookies, nil).Body.String()
	if !strings.Contains(body, "Mission 1 of 2") {
		t.Fatal("out-of-order choice advanced the game")
	}

	do(h, http.MethodPost, "/game/choose", url.Values{"mission": {"m1"}, "option": {"0"}}, cookies, nil)
	rec = do(h, http.MethodPost, "/game/choose", url.Values{"mission": {"m2"}, "option": {"0"}}, cookies,
		map[string]string{"HX-Request": "true"})
	if rec.Code != http.StatusOK {
		t.Fatalf("htmx choose = %d", rec.Code)
	}
	body = rec.Body.String()
	if strings.Contains(body, "<html") {
		t.Fatal("htmx response should be the panel only")
	}
	for _, s := range []string{`id="game-panel"`, "Top match", "Engineer", "Story score: 3", "Also a strong fit", "Mission 1 – Intro", "You chose: Build", "tech • build"} {
		if !strings.Contains(body, s) {
			t.Errorf("results missing %q", s)
		}
	}

	do(h, http.MethodPost, "/game/restart", url.Values{}, cookies, nil)
	body = do(h, http.MethodGet, "/game", nil, cookies, nil).Body.String()
	if strings.Contains(body, "Top match") || !strings.Contains(body, "Start") {
		t.Fatal("restart did not return to the start view")
	}
}

func TestChooseRequiresFields(t *testing.T) {
	_, h := newTestApp(t)
	for _, form := range []url.Values{
		{"mission": {"m1"}},
		{"mission": {"m1"}, "option": {"a"}},
		{"option": {"0"}},
	} {
		rec := do(h, http.MethodPost, "/game/choose", form, nil, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("POST /game/choose %v = %d, want 400", form, rec.Code)
		}
	}
}

func TestChooseOptionsWithoutIDs(t *testing.T) {
	_, h := newTestAppWith(t, map[string]string{
		"gameOptions": "mission_id,option_id,option_order,label,desc,scores\n" +
			"m1,,1,Build,,eng:1\n" +
			"m1,,2,Heal,,med:4\n" +
			"m2,x,1,Left,,eng:1\n" +
			"m2,x,2,Right,,med:1\n",
	})
	cookies := do(h, http.MethodGet, "/game", nil, nil, nil).Result().Cookies()
	do(h, http.MethodPost, "/game/start", url.Values{}, cookies, nil)

	body := do(h, http.MethodGet, "/game", nil, cookies, nil).Body.String()
	if !strings.Contains(body, `name="option" value="1"`) {
		t.Fatalf("second option not posted by index:\n%s", body)
	}

	rec := do(h, http.MethodPost, "/game/choose", url.Values{"mission": {"m1"}, "option": {"1"}}, cookies, nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("choose blank-id option = %d, want 303", rec.Code)
	}
	do(h, http.MethodPost, "/game/choose", url.Values{"mission": {"m2"}, "option": {"1"}}, cookies, nil)
	body = do(h, http.MethodGet, "/game", nil, cookies, nil).Body.String()
	for _, s := range []string{"Top match", "Doctor", "You chose: Heal", "You chose: Right"} {
		if !strings.Contains(body, s) {
			t.Errorf("results missing %q", s)
		}
	}
	if strings.Contains(body, "You chose: Build") || strings.Contains(body, "You chose: Left") {
		t.Fatal("a different option than the one clicked was recorded")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	_, h := newTestApp(t)
	a := do(h, http.MethodGet, "/game", nil, nil, nil).Result().Cookies()
	b := do(h, http.MethodGet, "/game", nil, nil, nil).Result().Cookies()
	if a[0].Value == b[0].Value {
		t.Fatal("two visitors got the same session id")
	}
	do(h, http.MethodPost, "/game/start", url.Values{}, a, nil)
	if body := do(h, http.MethodGet, "/game", nil, b, nil).Body.String(); strings.Contains(body, "Mission 1 of 2") {
		t.Fatal("starting one visitor's game changed another's")
	}
}

func TestCacheAPI(t *testing.T) {
	_, h := newTestApp(t)
	do(h, http.MethodGet, "/game", nil, nil, nil)

	rec := do(h, http.MethodGet, "/api/cache", nil, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/cache = %d", rec.Code)
	}
	var entries []cacheEntryJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	found := map[string]int{}
	for _, e := range entries {
		found[e.Dataset] = e.Rows
		if e.Stale {
			t.Errorf("%s reported stale right after fetch", e.Dataset)
		}
	}
	if found["gameCareers"] != 2 || found["gameOptions"] != 3 {
		t.Fatalf("entries = %v", found)
	}

	if rec := do(h, http.MethodDelete, "/api/cache?dataset=../etc", nil, nil, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad dataset = %d, want 400", rec.Code)
	}
	if rec := do(h, http.MethodDelete, "/api/cache?dataset=gameCareers", nil, nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("invalidate = %d", rec.Code)
	}

	rec = do(h, http.MethodDelete, "/api/cache", nil, nil, nil)
	var cleared struct {
		Success bool `json:"success"`
		Removed int  `json:"removed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &cleared); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !cleared.Success || cleared.Removed < 2 {
		t.Fatalf("clear = %+v", cleared)
	}
}

func TestEvictSessions(t *testing.T) {
	app, h := newTestApp(t)
	do(h, http.MethodGet, "/game", nil, nil, nil)

	if n := app.evictSessions(time.Now()); n != 0 {
		t.Fatalf("evicted %d fresh sessions", n)
	}
	if n := app.evictSessions(time.Now().Add(2 * time.Hour)); n != 1 {
		t.Fatalf("evicted %d, want 1", n)
	}
}

func TestRenderMarkdownStripsScriptLinks(t *testing.T) {
	app, _ := newTestApp(t)
	render := app.FuncMap["renderMarkdown"].(func(string) template.HTML)
	out := string(render("[x](javascript:alert(1)) and **bold**"))
	if strings.Contains(out, "javascript:") {
		t.Fatalf("unsafe link kept: %s", out)
	}
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("markdown not rendered: %s", out)
	}
}

func TestStaticAssets(t *testing.T) {
	_, h := newTestApp(t)
	rec := do(h, http.MethodGet, "/static/site.css", nil, nil, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), ".game-panel") {
		t.Fatalf("GET /static/site.css = %d", rec.Code)
	}
}

func TestAccessLog(t *testing.T) {
	app, h := newTestApp(t)
	var buf bytes.Buffer
	app.log = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cookies := do(h, http.MethodGet, "/game", nil, nil, nil).Result().Cookies()
	buf.Reset()
	do(h, http.MethodPost, "/game/start", url.Values{}, cookies, map[string]string{"HX-Request": "true"})
	do(h, http.MethodGet, "/static/site.css", nil, nil, nil)
	do(h, http.MethodGet, "/news?year=2023", nil, nil, nil)

	var lines []map[string]any
	for _, raw := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var line map[string]any
		if err := json.Unmarshal(raw, &line); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
		lines = append(lines, line)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d log lines, want 3:\n%s", len(lines), buf.String())
	}

	game := lines[0]
	if game["area"] != "game" || game["game_state"] != "in_mission" || game["htmx"] != true || game["status"] != float64(200) {
		t.Fatalf("game line = %v", game)
	}
	if v, _ := game["visitor"].(string); !strings.HasPrefix(cookies[0].Value, strings.TrimSuffix(v, "...")) {
		t.Fatalf("visitor = %q", v)
	}
	if lines[1]["area"] != "static" || lines[1]["level"] != "DEBUG" {
		t.Fatalf("static line = %v", lines[1])
	}
	news := lines[2]
	if news["area"] != "page" || news["query"] != "year=2023" || news["level"] != "INFO" || news["bytes"].(float64) <= 0 {
		t.Fatalf("page line = %v", news)
	}
}
