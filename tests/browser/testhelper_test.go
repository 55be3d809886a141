package browser_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	web "zonehub/internal/adapters/http"
	"zonehub/internal/adapters/storage"
	accountStore "zonehub/internal/adapters/storage/account"
	bookingStore "zonehub/internal/adapters/storage/booking"
	clubStore "zonehub/internal/adapters/storage/club"
	emailStore "zonehub/internal/adapters/storage/email"
	eventStore "zonehub/internal/adapters/storage/event"
	eventRequestStore "zonehub/internal/adapters/storage/eventrequest"
	eventTypeStore "zonehub/internal/adapters/storage/eventtype"
	importBatchStore "zonehub/internal/adapters/storage/importbatch"
	outboxStore "zonehub/internal/adapters/storage/outbox"
	zoneStore "zonehub/internal/adapters/storage/zone"
	"zonehub/internal/application/orchestrators"
	clubDomain "zonehub/internal/domain/club"
	eventDomain "zonehub/internal/domain/event"
	zoneDomain "zonehub/internal/domain/zone"
)

const (
	testAdminEmail    = "admin@zone.test"
	testAdminPassword = "TestPass123!long"
)

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL string
	DB      *sql.DB
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
	Stores  *web.Stores
	AdminID string
}

// newTestApp creates a fully wired app with a temp SQLite DB, seeds a zone,
// a club and a calendar event, and starts an HTTP server. The test skips
// when Playwright cannot launch a browser in this environment.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to initialize test DB: %v", err)
	}

	acctStore := accountStore.NewSQLiteStore(db)
	stores := &web.Stores{
		AccountStore:       acctStore,
		ZoneStore:          zoneStore.NewSQLiteStore(db),
		ClubStore:          clubStore.NewSQLiteStore(db),
		EventStore:         eventStore.NewSQLiteStore(db),
		EventTypeStore:     eventTypeStore.NewSQLiteStore(db),
		EventRequestStore:  eventRequestStore.NewSQLiteStore(db),
		ImportBatchStore:   importBatchStore.NewSQLiteStore(db),
		EmailStore:         emailStore.NewSQLiteStore(db),
		EmailTemplateStore: emailStore.NewSQLiteTemplateStore(db),
		EquipmentStore:     bookingStore.NewSQLiteEquipmentStore(db),
		BookingStore:       bookingStore.NewSQLiteStore(db),
		OutboxStore:        outboxStore.NewSQLiteStore(db),
	}

	ctx := context.Background()
	adminID, err := orchestrators.ExecuteCreateAccount(ctx, orchestrators.CreateAccountInput{
		Email:    testAdminEmail,
		Password: testAdminPassword,
		Role:     "admin",
	}, orchestrators.CreateAccountDeps{AccountStore: acctStore})
	if err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	seedCalendar(t, stores)

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Serve static assets relative to the project root
	projectRoot := findProjectRoot(t)
	origDir, _ := os.Getwd()
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to chdir to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	mux := web.NewMux("static", stores)
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		srv.Close()
		db.Close()
		t.Skipf("playwright unavailable: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		srv.Close()
		db.Close()
		t.Skipf("browser could not launch: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		DB:      db,
		Server:  srv,
		PW:      pw,
		Browser: browser,
		Stores:  stores,
		AdminID: adminID,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
	})

	return app
}

// seedCalendar stores one zone, one club and one upcoming event.
func seedCalendar(t *testing.T, stores *web.Stores) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	if err := stores.ZoneStore.Save(ctx, zoneDomain.Zone{
		ID: "z1", Name: "Northern Zone", CreatedAt: now,
	}); err != nil {
		t.Fatalf("failed to seed zone: %v", err)
	}
	if err := stores.ClubStore.Save(ctx, clubDomain.Club{
		ID: "c1", ZoneID: "z1", Name: "Springfield Pony Club",
		Status: clubDomain.StatusActive, CreatedAt: now,
	}); err != nil {
		t.Fatalf("failed to seed club: %v", err)
	}
	start := now.AddDate(0, 0, 7).Truncate(24 * time.Hour)
	if err := stores.EventStore.Save(ctx, eventDomain.Event{
		ID: "e1", ClubID: "c1", Name: "Spring Rally",
		StartDate: start, EndDate: start,
		Source: eventDomain.SourceManual, CreatedAt: now,
	}); err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login fills the sign-in form and waits for the event list to show.
func (a *testApp) login(t *testing.T, page playwright.Page) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/"); err != nil {
		t.Fatalf("failed to navigate: %v", err)
	}
	if err := page.Locator("#email").Fill(testAdminEmail); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("#password").Fill(testAdminPassword); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("#login-button").Click(); err != nil {
		t.Fatalf("failed to click sign in: %v", err)
	}
	if err := page.Locator("#events-section").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("event list did not appear after login: %v", err)
	}
}

// findProjectRoot walks up from the working directory to find the directory
// containing go.mod.
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
