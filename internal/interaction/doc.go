// Package interaction implements the submit/result lifecycle of the summarize form, independent of any view.
//
// # States
//
// [State] is a closed set of variants; exactly one is current at a time:
//
//	Idle ──submit(valid)──▶ Submitting ──response──▶ Succeeded
//	  │                         │
//	  └──submit(invalid)──▶ ValidationFailed         └──failure──▶ Failed
//
// Every state except [Submitting] accepts a new submit. A submit while [Submitting] is ignored.
//
// # Transitions
//
// [Next] is a pure function from (state, event) to the next state plus a flag telling the caller
// whether an outbound request must be issued. [Controller] wraps it with the mutable cells the form
// needs (raw input, current state, and a single outstanding request slot) and drives the
// [services.Service] call.
//
// # Requests
//
// [Controller.Submit] moves to [Submitting] synchronously and hands back a [*Request]. The caller
// performs the blocking [Request.Do] wherever suits it (a bubbletea command, or inline for the CLI)
// and applies the [Outcome] with [Controller.Complete]. No new request can start until the slot is
// emptied, so late results never race.
//
// # Errors
//
// All failures end up as a user facing string on the state; see [Message].
//
// # Clipboard
//
// [Controller.Copy] copies the current summary and raises a [Notification].
package interaction
