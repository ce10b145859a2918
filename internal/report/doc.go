// Package report renders the combined reconnaissance report.
//
// The Generator embeds each tool's raw output into an HTML document,
// converts it to PDF on a best-effort basis, and optionally writes a
// Markdown rendition.
//
// Design decision: the optional rendering capabilities (HTML templating,
// PDF conversion) are explicit objects injected at construction time,
// each with an available and an unavailable implementation, instead of
// ambient nullable globals. Whatever combination is injected, both the
// HTML and the PDF artifact exist after Generate returns: a failed
// conversion degrades to a fixed placeholder file, never an error that
// stops the pipeline.
package report
