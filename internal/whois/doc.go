// Package whois gathers WHOIS registration data for the target domain.
//
// Unlike the other pipeline stages this one runs in-process, but it
// follows the same failure contract: a failed lookup produces an empty
// artifact, never an error that stops the pipeline.
package whois
