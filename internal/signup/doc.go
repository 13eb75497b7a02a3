// Package signup implements the claim-a-spot flow: a hover-revealed email
// form followed by one-time code entry.
//
//	Button --PointerEnter--> EmailEntry --signup ok--> CodeEntry --verify ok--> done
//	            ^                 |
//	            +---Abandon-------+  (empty field blurred, after a grace delay)
//
// The machine performs no I/O. SubmitEmail and SubmitCode return the Request
// to run, and the caller feeds the outcome back with ApplySignup or
// ApplyVerify. Invalid input yields no Request at all, so nothing reaches the
// network. While a request is in flight the session is Submitting and edits,
// resubmits and abandonment are ignored.
//
// Reset starts a new session generation. A Request remembers the generation
// that issued it, and replies for an older one are dropped.
package signup
