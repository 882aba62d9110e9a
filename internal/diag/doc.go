// Package diag defines the diagnostic model shared by the check pipeline.
//
// # Purpose
//
// The package owns the data side of reporting: plain, serialisable records
// for findings (Diagnostic), accumulation in deterministic order (Bag), and
// an emission seam (Reporter) so that producers never touch storage or
// formatting directly. Suggested corrections travel along as structured
// edits that internal/fix can apply.
//
// # Scope
//
// No formatting, no IO, no CLI here. Rendering lives in internal/diagfmt,
// fix application in internal/fix, per-file orchestration in internal/driver.
//
// # Data model
//
// A Diagnostic couples a Severity and a stable Code with a message, the
// primary source.Span, and optional extras: secondary Notes, a Help string
// with remediation advice, and Fix records. A Note must add context the
// message lacks ("label declared here"), not restate it. Diagnostics are
// data, never Go errors: an emitted diagnostic is the output of analysis,
// not a failure of it.
//
// A Fix is a Title plus one or more FixEdits (span and replacement text).
// Fixes stay data-only; span validation and overlap rejection happen in the
// fix engine at apply time.
//
// # Emitting diagnostics
//
// Rules go through a Reporter. The ReportError/ReportWarning/ReportInfo
// helpers start a ReportBuilder that chains WithNote / WithHelp / WithFix
// before Emit; bare findings can call Reporter.Report directly. BagReporter
// stores into a Bag, which sorts deterministically, counts by severity and
// caps stored volume. DedupReporter drops exact repeats before they reach
// storage.
//
// # Consumers
//
//   - internal/diagfmt renders pretty, JSON and short golden output.
//   - internal/fix applies FixEdits to source files.
//   - internal/driver collects one Bag per checked file and replays bags
//     from the disk cache.
//
// New fields must keep the model deterministic and serialisable; the disk
// cache and the golden tests depend on that.
package diag
