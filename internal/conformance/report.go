package conformance

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Check is the outcome of one assertion against the page.
type Check struct {
	Profile string
	Name    string
	Pass    bool
	Detail  string
}

// Totals counts outcomes for one profile.
type Totals struct {
	Profile string
	Passed  int
	Failed  int
}

// Report collects every check of a run, grouped by profile in run order.
type Report struct {
	URL     string
	Checks  []Check
	Started time.Time
	Elapsed time.Duration
}

// Passed reports whether the run had checks and none failed.
func (r *Report) Passed() bool {
	if len(r.Checks) == 0 {
		return false
	}
	for _, c := range r.Checks {
		if !c.Pass {
			return false
		}
	}
	return true
}

// Failures returns the failed checks.
func (r *Report) Failures() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.Pass {
			out = append(out, c)
		}
	}
	return out
}

// Totals returns per-profile counts in the order profiles first appear.
func (r *Report) Totals() []Totals {
	var out []Totals
	index := make(map[string]int)
	for _, c := range r.Checks {
		i, ok := index[c.Profile]
		if !ok {
			i = len(out)
			index[c.Profile] = i
			out = append(out, Totals{Profile: c.Profile})
		}
		if c.Pass {
			out[i].Passed++
		} else {
			out[i].Failed++
		}
	}
	return out
}

var (
	passStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	profileStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#b44dff"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Write prints the report as one line per check followed by totals.
func (r *Report) Write(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("Conformance run against %s\n", r.URL)

	profile := ""
	for _, c := range r.Checks {
		if c.Profile != profile {
			profile = c.Profile
			ew.printf("\n%s\n", profileStyle.Render(">>> "+profile))
		}
		status := passStyle.Render("PASS")
		if !c.Pass {
			status = failStyle.Render("FAIL")
		}
		ew.printf("  [%s] %s", status, c.Name)
		if c.Detail != "" {
			ew.printf(" %s", detailStyle.Render("("+c.Detail+")"))
		}
		ew.printf("\n")
	}

	ew.printf("\n")
	passed, total := 0, 0
	for _, t := range r.Totals() {
		ew.printf("  %-8s %d/%d passed\n", t.Profile, t.Passed, t.Passed+t.Failed)
		passed += t.Passed
		total += t.Passed + t.Failed
	}
	ew.printf("  %-8s %d/%d passed in %s\n", "total", passed, total, r.Elapsed.Round(time.Millisecond))

	if failures := r.Failures(); len(failures) > 0 {
		ew.printf("\nFailed checks:\n")
		for _, c := range failures {
			ew.printf("  - %s: %s: %s\n", c.Profile, c.Name, c.Detail)
		}
	}
	return ew.err
}

// errWriter keeps the first write error so Write can format freely.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
