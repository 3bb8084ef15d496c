package data

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/nitishagar/bharatdcim/internal/model"
	"github.com/nitishagar/bharatdcim/internal/tariff"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

func TestCatalog_SaveLoad(t *testing.T) {
	for _, name := range []string{"catalog.yaml", "nested/catalog.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := SaveCatalog(BuiltinCatalog(), path); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := LoadCatalog(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got.DefaultState != tariff.DefaultState {
				t.Errorf("default state: want %q got %q", tariff.DefaultState, got.DefaultState)
			}
			if !reflect.DeepEqual(got.Schedules, tariff.Builtin()) {
				t.Errorf("schedules changed after save/load")
			}
		})
	}
}

func TestLoadCatalog_Errors(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalog(bad); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestOpenRegistry_Builtin(t *testing.T) {
	reg, err := OpenRegistry(context.Background(), "", "", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if reg.Default().State != tariff.DefaultState {
		t.Errorf("default: want %q got %q", tariff.DefaultState, reg.Default().State)
	}

	reg, err = OpenRegistry(context.Background(), "", "Karnataka", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if reg.Default().State != "Karnataka" {
		t.Errorf("default override ignored: %q", reg.Default().State)
	}
}

func TestOpenRegistry_FileValidatesSchedules(t *testing.T) {
	cat := BuiltinCatalog()
	cat.DefaultState = "Tamil Nadu"
	good := filepath.Join(t.TempDir(), "good.yaml")
	if err := SaveCatalog(cat, good); err != nil {
		t.Fatal(err)
	}
	reg, err := OpenRegistry(context.Background(), good, "", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if reg.Default().State != "Tamil Nadu" {
		t.Errorf("file default ignored: %q", reg.Default().State)
	}

	broken := BuiltinCatalog()
	broken.Schedules[1].TimeSlots = broken.Schedules[1].TimeSlots[1:]
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := SaveCatalog(broken, bad); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenRegistry(context.Background(), bad, "", nil); err == nil || !strings.Contains(err.Error(), "not covered") {
		t.Fatalf("expected partition error, got %v", err)
	}
}

func TestOpenRegistry_Remote(t *testing.T) {
	raw, err := yaml.Marshal(BuiltinCatalog())
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/catalog.yaml":
			if r.Header.Get("Authorization") != "Bearer s3cret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/yaml")
			w.Write(raw)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewCatalogClient("s3cret", zerolog.Nop())
	reg, err := OpenRegistry(context.Background(), srv.URL+"/catalog.yaml", "", client)
	if err != nil {
		t.Fatalf("open remote: %v", err)
	}
	if reg.Len() != len(tariff.Builtin()) {
		t.Errorf("expected %d schedules, got %d", len(tariff.Builtin()), reg.Len())
	}

	_, err = NewCatalogClient("", zerolog.Nop()).Fetch(context.Background(), srv.URL+"/catalog.yaml")
	var fe *CatalogFetchError
	if !errors.As(err, &fe) || fe.Code != "UNAUTHORIZED" {
		t.Errorf("expected UNAUTHORIZED fetch error, got %v", err)
	}

	_, err = client.Fetch(context.Background(), srv.URL+"/missing.json")
	if !errors.As(err, &fe) || fe.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 fetch error, got %v", err)
	}
}

func TestIsRemote(t *testing.T) {
	if !IsRemote("https://example.com/c.yaml") || !IsRemote("http://x/y") {
		t.Errorf("expected URLs to be remote")
	}
	if IsRemote("./catalog.yaml") || IsRemote("") {
		t.Errorf("expected paths to be local")
	}
}

func TestBuiltinScenarios(t *testing.T) {
	reg := tariff.MustBuiltin()
	seen := map[string]bool{}
	for _, s := range BuiltinScenarios() {
		if seen[s.ID] {
			t.Errorf("duplicate scenario id %q", s.ID)
		}
		seen[s.ID] = true
		if _, ok := reg.Schedule(s.State); !ok {
			t.Errorf("%s: state %q not in builtin catalog", s.ID, s.State)
		}
		if s.Profile.PowerFactor <= 0 || s.Profile.PowerFactor > 1 {
			t.Errorf("%s: power factor %v out of range", s.ID, s.Profile.PowerFactor)
		}
		if s.Profile.Pattern.Sum() != 100 {
			t.Errorf("%s: pattern sums to %v", s.ID, s.Profile.Pattern.Sum())
		}
	}
	for _, id := range []string{"mumbai-colocation-50-racks", "hyderabad-hyperscale-200-racks", "demo-tamil-nadu"} {
		if !seen[id] {
			t.Errorf("missing scenario %q", id)
		}
	}

	s, ok := FindScenario(BuiltinScenarios(), "hyderabad-hyperscale-200-racks")
	if !ok || s.State != "Telangana" || s.Profile.ITLoadKWh != 720000 {
		t.Errorf("unexpected hyderabad scenario %+v", s)
	}
	if _, ok := FindScenario(BuiltinScenarios(), "nope"); ok {
		t.Errorf("unexpected match for unknown id")
	}
	if g := GroupByState(BuiltinScenarios()); len(g["Maharashtra"]) != 2 {
		t.Errorf("expected 2 Maharashtra scenarios, got %d", len(g["Maharashtra"]))
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Tamil Nadu":       "tamil-nadu",
		"  Karnataka ":     "karnataka",
		"Mumbai -- 50 DC!": "mumbai-50-dc",
		"":                 "",
	}
	for in, want := range tests {
		if got := slug(in); got != want {
			t.Errorf("slug(%q): want %q got %q", in, want, got)
		}
	}
}

func TestLoadScenarioDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("b_chennai.yaml", `
name: Chennai Edge
state: Tamil Nadu
profile:
  it_load_kwh: 60000
  power_factor: 0.93
  pattern: {peak: 30, normal: 50, off_peak: 20}
`)
	write("a_curve.yml", `
state: Karnataka
averaging: duration
profile:
  it_load_kwh: 50000
  power_factor: 0.97
load_curve: [1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1]
`)
	write("broken.yaml", "state: Karnataka\nprofile:\n  power_factor: 0\n")
	write("README.md", "not a scenario")

	got, skipped, err := LoadScenarioDir(dir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(got))
	}
	if got[0].ID != "a_curve" || got[0].Name != "a_curve" {
		t.Errorf("unexpected first scenario %+v", got[0])
	}
	if _, ok := got[0].Curve(); !ok {
		t.Errorf("curve scenario lost its load curve")
	}
	if got[0].Calculator().Averaging != "duration" {
		t.Errorf("averaging not carried through")
	}
	if got[1].Name != "Chennai Edge" || got[1].Profile.PUE != 1 {
		t.Errorf("unexpected second scenario %+v", got[1])
	}
	if _, ok := skipped["broken.yaml"]; !ok || len(skipped) != 1 {
		t.Errorf("expected broken.yaml to be skipped, got %v", skipped)
	}

	none, skipped, err := LoadScenarioDir(filepath.Join(dir, "missing"))
	if err != nil || none != nil || skipped != nil {
		t.Errorf("missing dir should be empty, got %v %v %v", none, skipped, err)
	}
}

func TestEstimateCache(t *testing.T) {
	c := NewEstimateCache(time.Minute)
	now := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set(Estimate{ID: "a", State: "Karnataka", Bill: model.BillBreakdown{Total: 42}})
	got, ok := c.Get("a")
	if !ok || got.Bill.Total != 42 {
		t.Fatalf("expected stored estimate, got %+v (ok=%v)", got, ok)
	}
	if _, ok := c.Get("b"); ok {
		t.Fatalf("unexpected hit for unknown id")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expired estimate still returned")
	}
	if c.Len() != 1 {
		t.Fatalf("expired entry should linger until sweep")
	}
	if n := c.Sweep(); n != 1 || c.Len() != 0 {
		t.Fatalf("sweep removed %d, %d left", n, c.Len())
	}

	c.Set(Estimate{ID: "x"})
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("clear left entries behind")
	}

	var nilCache *EstimateCache
	nilCache.Set(Estimate{ID: "a"})
	if _, ok := nilCache.Get("a"); ok || nilCache.Len() != 0 || nilCache.Sweep() != 0 {
		t.Fatalf("nil cache should store nothing")
	}
}

func TestEstimateCache_RunStopsWithContext(t *testing.T) {
	c := NewEstimateCache(0)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestMergeCatalogs(t *testing.T) {
	base := BuiltinCatalog()
	ka := base.Schedules[2]
	if ka.State != "Karnataka" {
		t.Fatalf("builtin order changed: %s", ka.State)
	}
	ka.State = "karnataka"
	ka.BaseEnergyRate = 7.25
	goa := base.Schedules[0].Clone()
	goa.State, goa.StateCode = "Goa", "GA"

	update := &CatalogFile{Schedules: []model.TariffSchedule{ka, goa}}
	merged, replaced, added := MergeCatalogs(base, update)

	if len(merged.Schedules) != len(base.Schedules)+1 {
		t.Fatalf("expected %d schedules, got %d", len(base.Schedules)+1, len(merged.Schedules))
	}
	if merged.Schedules[2].BaseEnergyRate != 7.25 {
		t.Errorf("Karnataka not replaced in place: %+v", merged.Schedules[2])
	}
	if merged.Schedules[len(merged.Schedules)-1].State != "Goa" {
		t.Errorf("new state not appended last")
	}
	if !reflect.DeepEqual(replaced, []string{"karnataka"}) || !reflect.DeepEqual(added, []string{"Goa"}) {
		t.Errorf("replaced=%v added=%v", replaced, added)
	}
	if merged.DefaultState != tariff.DefaultState {
		t.Errorf("default state %q", merged.DefaultState)
	}
	if BuiltinCatalog().Schedules[2].BaseEnergyRate == 7.25 || base.Schedules[2].State != "Karnataka" {
		t.Errorf("base catalog was modified")
	}

	if _, err := tariff.NewRegistry(merged.Schedules, merged.DefaultState); err != nil {
		t.Errorf("merged catalog should build a registry: %v", err)
	}
}

func TestLoadScenarioDir_ShippedExamples(t *testing.T) {
	scenarios, skipped, err := LoadScenarioDir(filepath.Join("..", "..", "examples", "scenarios"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("shipped scenarios failed to load: %v", skipped)
	}
	ids := make([]string, 0, len(scenarios))
	for _, s := range scenarios {
		ids = append(ids, s.ID)
	}
	want := []string{"bengaluru-ai-cluster", "chennai-edge", "pune-colo-expansion"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids: want %v got %v", want, ids)
	}
	reg := tariff.MustBuiltin()
	for _, s := range scenarios {
		if _, ok := reg.Schedule(s.State); !ok {
			t.Errorf("%s: state %q not in the builtin catalog", s.ID, s.State)
		}
	}
}
