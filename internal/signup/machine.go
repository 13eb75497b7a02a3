package signup

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/buildboard/buildboard/internal/api"
)

// CodeLength is the length of a one-time code.
const CodeLength = 6

// Mode is the visible step of the claim-a-spot flow.
type Mode int

const (
	ModeButton Mode = iota
	ModeEmailEntry
	ModeCodeEntry
)

func (m Mode) String() string {
	switch m {
	case ModeButton:
		return "button"
	case ModeEmailEntry:
		return "email"
	case ModeCodeEntry:
		return "code"
	default:
		return "unknown"
	}
}

// Session is the state of one visitor's pass through the flow.
type Session struct {
	Email      string
	Code       string
	Mode       Mode
	Submitting bool
	LastError  string
}

// Kind distinguishes the two backend operations a Request can perform.
type Kind int

const (
	KindSignup Kind = iota
	KindVerify
)

// Request is a backend call the caller must run asynchronously and feed back
// through ApplySignup or ApplyVerify. Gen identifies the session that issued
// it; replies for an earlier session are dropped.
type Request struct {
	Kind  Kind
	Email string
	Code  string
	Gen   uint64
}

// Run performs the request against backend.
func (r Request) Run(ctx context.Context, backend api.Backend) error {
	switch r.Kind {
	case KindVerify:
		_, err := backend.Verify(ctx, r.Email, r.Code)
		return err
	default:
		_, err := backend.Signup(ctx, api.SignupRequest{Email: r.Email})
		return err
	}
}

// Machine drives Session through Button → EmailEntry → CodeEntry. Its methods
// must be called from a single goroutine (the UI event loop).
type Machine struct {
	session Session
	gen     uint64
	blurGen uint64
}

// New returns a machine in ModeButton.
func New() *Machine {
	return &Machine{}
}

// Session returns a copy of the current session.
func (m *Machine) Session() Session {
	return m.session
}

// Generation identifies the current session. It changes on every Reset.
func (m *Machine) Generation() uint64 {
	return m.gen
}

// Mode is shorthand for Session().Mode.
func (m *Machine) Mode() Mode {
	return m.session.Mode
}

// PointerEnter reveals the email form. It reports whether the mode changed.
func (m *Machine) PointerEnter() bool {
	if m.session.Mode != ModeButton {
		return false
	}
	m.session.Mode = ModeEmailEntry
	m.blurGen++
	return true
}

// Focus marks the email field as focused again, cancelling any pending
// abandonment.
func (m *Machine) Focus() {
	m.blurGen++
}

// SetEmail updates the email field. Ignored while a request is in flight.
func (m *Machine) SetEmail(value string) {
	if m.session.Submitting || m.session.Mode != ModeEmailEntry {
		return
	}
	m.session.Email = value
	m.blurGen++
}

// SetCode updates the code field, uppercasing and truncating to CodeLength.
// Ignored while a request is in flight.
func (m *Machine) SetCode(value string) {
	if m.session.Submitting || m.session.Mode != ModeCodeEntry {
		return
	}
	m.session.Code = NormalizeCode(value)
}

// NormalizeCode uppercases value and keeps at most CodeLength runes.
func NormalizeCode(value string) string {
	value = strings.ToUpper(strings.TrimSpace(value))
	if utf8.RuneCountInString(value) <= CodeLength {
		return value
	}
	return string([]rune(value)[:CodeLength])
}

// SubmitEmail starts the signup call. An empty email, a request already in
// flight or the wrong mode is a silent no-op.
func (m *Machine) SubmitEmail() (Request, bool) {
	email := strings.TrimSpace(m.session.Email)
	if m.session.Mode != ModeEmailEntry || m.session.Submitting || email == "" {
		return Request{}, false
	}
	m.session.Submitting = true
	m.session.LastError = ""
	m.blurGen++
	return Request{Kind: KindSignup, Email: email, Gen: m.gen}, true
}

// ApplySignup records the outcome of req. Replies for another session or
// another step are ignored.
func (m *Machine) ApplySignup(req Request, err error) {
	if req.Gen != m.gen || req.Kind != KindSignup || m.session.Mode != ModeEmailEntry || !m.session.Submitting {
		return
	}
	m.session.Submitting = false
	if err != nil {
		m.session.LastError = errorText(err)
		return
	}
	m.session.LastError = ""
	m.session.Code = ""
	m.session.Mode = ModeCodeEntry
}

// SubmitCode starts the verify call. A code that is not exactly CodeLength
// characters, a request already in flight or the wrong mode is a no-op.
func (m *Machine) SubmitCode() (Request, bool) {
	code := NormalizeCode(m.session.Code)
	if m.session.Mode != ModeCodeEntry || m.session.Submitting || utf8.RuneCountInString(code) != CodeLength {
		return Request{}, false
	}
	m.session.Submitting = true
	m.session.LastError = ""
	return Request{Kind: KindVerify, Email: strings.TrimSpace(m.session.Email), Code: code, Gen: m.gen}, true
}

// ApplyVerify records the outcome of req. It returns true when the code was
// accepted; the session is then reset for the next visitor. Replies for
// another session or another step are ignored.
func (m *Machine) ApplyVerify(req Request, err error) bool {
	if req.Gen != m.gen || req.Kind != KindVerify || m.session.Mode != ModeCodeEntry || !m.session.Submitting {
		return false
	}
	m.session.Submitting = false
	if err != nil {
		m.session.LastError = errorText(err)
		return false
	}
	m.Reset()
	return true
}

// Blur is called when the email field loses focus. When the field is empty
// and nothing is in flight it returns a token the caller passes to Abandon
// after the grace delay.
func (m *Machine) Blur() (uint64, bool) {
	if m.session.Mode != ModeEmailEntry || m.session.Submitting || strings.TrimSpace(m.session.Email) != "" {
		return 0, false
	}
	m.blurGen++
	return m.blurGen, true
}

// Abandon reverts an empty, idle email form to the button. Tokens issued
// before the latest focus, edit or submit are ignored.
func (m *Machine) Abandon(token uint64) bool {
	if token != m.blurGen {
		return false
	}
	if m.session.Mode != ModeEmailEntry || m.session.Submitting || strings.TrimSpace(m.session.Email) != "" {
		return false
	}
	m.session.Mode = ModeButton
	m.session.LastError = ""
	return true
}

// Reset starts a new session in ModeButton. Requests issued before the reset
// can no longer change the session.
func (m *Machine) Reset() {
	m.session = Session{}
	m.gen++
	m.blurGen++
}

func errorText(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return "Something went wrong"
	}
	return msg
}
