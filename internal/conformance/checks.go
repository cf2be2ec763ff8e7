package conformance

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

const (
	idleWait     = 2 * time.Second
	pollInterval = 20 * time.Millisecond

	// Settle windows after an input, measured from the input event.
	startSettle = 500 * time.Millisecond
	inputSettle = 100 * time.Millisecond
	pauseSettle = 300 * time.Millisecond
	dropSettle  = 300 * time.Millisecond

	softDropStep = 1
)

var touchButtons = []string{"btn-left", "btn-down", "btn-rotate", "btn-right", "btn-drop", "btn-pause"}

// snapshot is everything the checks read from the page in one round trip.
type snapshot struct {
	Score         string `json:"score"`
	Level         string `json:"level"`
	Lines         string `json:"lines"`
	ScoreM        string `json:"scoreM"`
	LevelM        string `json:"levelM"`
	LinesM        string `json:"linesM"`
	OverlayHidden bool   `json:"overlayHidden"`
	Title         string `json:"title"`
	Button        string `json:"button"`
}

const snapshotJS = `() => {
	const text = (id) => {
		const el = document.getElementById(id);
		return el ? el.textContent.trim() : '';
	};
	const overlay = document.getElementById('overlay');
	return {
		score: text('score'), level: text('level'), lines: text('lines'),
		scoreM: text('score-m'), levelM: text('level-m'), linesM: text('lines-m'),
		overlayHidden: !overlay || overlay.classList.contains('hidden'),
		title: text('overlay-title'),
		button: text('btn-start'),
	};
}`

func (s snapshot) score() int {
	n, err := strconv.Atoi(s.ScoreM)
	if err != nil {
		return -1
	}
	return n
}

func (s snapshot) synced() bool {
	return s.Score == s.ScoreM && s.Level == s.LevelM && s.Lines == s.LinesM
}

func (s snapshot) readouts() string {
	return fmt.Sprintf("desktop=%s/%s/%s mobile=%s/%s/%s",
		s.Score, s.Level, s.Lines, s.ScoreM, s.LevelM, s.LinesM)
}

// run holds one profile's page and the checks recorded so far.
type run struct {
	page        *rod.Page
	profile     Profile
	screenshots string
	logger      *log.Logger

	checks []Check

	mu         sync.Mutex
	pageErrors []string
}

func (r *run) pageError(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pageErrors = append(r.pageErrors, msg)
}

func (r *run) errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.pageErrors...)
}

// check records one outcome, taking a screenshot when it failed.
func (r *run) check(name string, pass bool, detail string) {
	r.checks = append(r.checks, Check{Profile: r.profile.Name, Name: name, Pass: pass, Detail: detail})
	if !pass {
		r.logger.Warn("check failed", "profile", r.profile.Name, "check", name, "detail", detail)
		r.screenshot(name)
	}
}

func (r *run) screenshot(name string) {
	if r.screenshots == "" {
		return
	}
	img, err := r.page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		r.logger.Warn("screenshot failed", "error", err)
		return
	}
	file := fmt.Sprintf("%s-%02d-%s.png", r.profile.Name, len(r.checks), slug(name))
	if err := os.WriteFile(filepath.Join(r.screenshots, file), img, 0o644); err != nil {
		r.logger.Warn("screenshot failed", "error", err)
	}
}

func slug(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + 'a' - 'A'
		}
		return '-'
	}, s)
}

func (r *run) read() (snapshot, error) {
	var s snapshot
	res, err := r.page.Eval(snapshotJS)
	if err != nil {
		return s, fmt.Errorf("read page: %w", err)
	}
	if err := res.Value.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("read page: %w", err)
	}
	return s, nil
}

// settle polls the page until ok holds or the window closes and returns
// the last snapshot either way.
func (r *run) settle(window time.Duration, ok func(snapshot) bool) (snapshot, error) {
	deadline := time.Now().Add(window)
	for {
		s, err := r.read()
		if err != nil || ok(s) || time.Now().After(deadline) {
			return s, err
		}
		time.Sleep(pollInterval)
	}
}

// visible reports whether selector matches an element that is rendered.
func (r *run) visible(selector string) bool {
	has, el, err := r.page.Has(selector)
	if err != nil || !has {
		return false
	}
	ok, err := el.Visible()
	return err == nil && ok
}

func (r *run) count(selector string) int {
	els, err := r.page.Elements(selector)
	if err != nil {
		return 0
	}
	return len(els)
}

func (r *run) press(key input.Key) error {
	if err := r.page.Keyboard.Type(key); err != nil {
		return fmt.Errorf("press %s: %w", key.Info().Key, err)
	}
	return nil
}

// activate clicks on desktop and taps on touch profiles.
func (r *run) activate(id string) error {
	el, err := r.page.Element("#" + id)
	if err != nil {
		return fmt.Errorf("find #%s: %w", id, err)
	}
	if r.profile.Mobile {
		err = el.Tap()
	} else {
		err = el.Click(proto.InputMouseButtonLeft, 1)
	}
	if err != nil {
		return fmt.Errorf("activate #%s: %w", id, err)
	}
	return nil
}

// runAll executes the static checks, the profile's scenario and the final
// page-error check.
func (r *run) runAll() error {
	if err := r.staticChecks(); err != nil {
		return err
	}
	var err error
	if r.profile.Mobile {
		err = r.touchScenario()
	} else {
		err = r.keyboardScenario()
	}
	if err != nil {
		return err
	}

	errs := r.errors()
	detail := ""
	if len(errs) > 0 {
		detail = fmt.Sprintf("%d error(s): %s", len(errs), strings.Join(errs, "; "))
	}
	r.check("no page errors", len(errs) == 0, detail)
	return nil
}

func (r *run) staticChecks() error {
	info, err := r.page.Info()
	if err != nil {
		return fmt.Errorf("page info: %w", err)
	}
	r.check("title is Tetris", info.Title == "Tetris", fmt.Sprintf("got %q", info.Title))
	r.check("header visible", r.visible("header h1"), "")

	r.check("board present", r.count("#board") == 1, "")
	r.check("next piece present", r.count("#next-piece") == 1, "")

	s, err := r.read()
	if err != nil {
		return err
	}
	r.check("overlay visible before start", !s.OverlayHidden && r.visible("#overlay"), "")
	r.check("start button reads START", s.Button == "START", fmt.Sprintf("got %q", s.Button))

	r.check("mobile stats visible", r.visible("#mobile-stats"), "")
	r.check("initial readouts 0/1/0",
		s.ScoreM == "0" && s.LevelM == "1" && s.LinesM == "0" && s.synced(), s.readouts())

	r.check("touch controls visible", r.visible("#touch-controls"), "")
	for _, id := range touchButtons {
		r.check("#"+id+" visible", r.visible("#"+id), "")
	}

	links, err := r.page.Elements(`link[rel="manifest"]`)
	if err != nil {
		return fmt.Errorf("manifest link: %w", err)
	}
	r.check("one manifest link", len(links) == 1, fmt.Sprintf("found %d", len(links)))
	href := ""
	if len(links) > 0 {
		if v, err := links[0].Attribute("href"); err == nil && v != nil {
			href = *v
		}
	}
	r.check("manifest href is manifest.json", href == "manifest.json", fmt.Sprintf("got %q", href))
	return nil
}

func (r *run) start() error {
	if err := r.activate("btn-start"); err != nil {
		return err
	}
	s, err := r.settle(startSettle, func(s snapshot) bool { return s.OverlayHidden })
	if err != nil {
		return err
	}
	r.check("overlay hidden after start", s.OverlayHidden, "title "+s.Title)
	return nil
}

func (r *run) keyboardScenario() error {
	if err := r.start(); err != nil {
		return err
	}

	before, err := r.read()
	if err != nil {
		return err
	}
	if err := r.press(input.ArrowDown); err != nil {
		return err
	}
	s, err := r.settle(inputSettle, func(s snapshot) bool { return s.score() >= 1 })
	if err != nil {
		return err
	}
	r.check("ArrowDown scores a soft drop", s.score() >= 1,
		fmt.Sprintf("score %d -> %d", before.score(), s.score()))

	for _, k := range []input.Key{input.ArrowLeft, input.ArrowRight, input.ArrowUp} {
		if err := r.press(k); err != nil {
			return err
		}
	}
	s, err = r.settle(inputSettle, func(snapshot) bool { return false })
	if err != nil {
		return err
	}
	r.check("lateral and rotate keys absorbed", s.OverlayHidden && len(r.errors()) == 0, s.readouts())

	if err := r.press(input.KeyP); err != nil {
		return err
	}
	s, err = r.settle(pauseSettle, func(s snapshot) bool { return !s.OverlayHidden })
	if err != nil {
		return err
	}
	r.check("p shows the overlay", !s.OverlayHidden, "")
	r.check("overlay title is PAUSED", s.Title == "PAUSED", fmt.Sprintf("got %q", s.Title))
	r.check("button reads RESUME", s.Button == "RESUME", fmt.Sprintf("got %q", s.Button))

	if err := r.press(input.KeyP); err != nil {
		return err
	}
	s, err = r.settle(pauseSettle, func(s snapshot) bool { return s.OverlayHidden })
	if err != nil {
		return err
	}
	r.check("second p hides the overlay", s.OverlayHidden, "")

	before = s
	if err := r.press(input.Space); err != nil {
		return err
	}
	s, err = r.settle(dropSettle, func(s snapshot) bool { return s.score() > before.score()+softDropStep })
	if err != nil {
		return err
	}
	r.check("Space hard drop outscores a soft drop", s.score() > before.score()+softDropStep,
		fmt.Sprintf("score %d -> %d", before.score(), s.score()))

	r.check("desktop and mobile readouts equal", s.synced(), s.readouts())
	return nil
}

func (r *run) touchScenario() error {
	if err := r.start(); err != nil {
		return err
	}

	before, err := r.read()
	if err != nil {
		return err
	}
	if err := r.activate("btn-down"); err != nil {
		return err
	}
	s, err := r.settle(dropSettle, func(s snapshot) bool { return s.score() > before.score() })
	if err != nil {
		return err
	}
	r.check("btn-down scores a soft drop", s.score() > before.score(),
		fmt.Sprintf("score %d -> %d", before.score(), s.score()))

	for _, id := range []string{"btn-left", "btn-right", "btn-rotate"} {
		if err := r.activate(id); err != nil {
			return err
		}
	}
	s, err = r.settle(inputSettle, func(snapshot) bool { return false })
	if err != nil {
		return err
	}
	r.check("lateral and rotate buttons absorbed", s.OverlayHidden && len(r.errors()) == 0, s.readouts())

	before = s
	if err := r.activate("btn-drop"); err != nil {
		return err
	}
	s, err = r.settle(dropSettle, func(s snapshot) bool { return s.score() > before.score()+softDropStep })
	if err != nil {
		return err
	}
	r.check("btn-drop outscores a soft drop", s.score() > before.score()+softDropStep,
		fmt.Sprintf("score %d -> %d", before.score(), s.score()))

	if err := r.activate("btn-pause"); err != nil {
		return err
	}
	s, err = r.settle(pauseSettle, func(s snapshot) bool { return !s.OverlayHidden })
	if err != nil {
		return err
	}
	r.check("btn-pause shows the overlay", !s.OverlayHidden && s.Title == "PAUSED",
		fmt.Sprintf("title %q", s.Title))

	r.check("desktop and mobile readouts equal", s.synced(), s.readouts())
	return nil
}
