// Package tool contains the adapters for the external reconnaissance
// executables: amass, dnsrecon, subfinder, httpx, gowitness, and nmap.
//
// Each adapter maps its inputs (the target domain or a prior tool's
// output file) and the shared output directory onto the exact command
// line the tool expects, delegates execution to an executil.Runner,
// and returns the location of the produced artifact. The argument
// shapes are the wire contract with each tool and must not change.
//
// Two sub-patterns exist:
//   - Self-writing tools (amass, subfinder, httpx, nmap) receive an
//     output-path flag and write their own file. The adapter returns
//     that path without checking whether the tool actually wrote it.
//   - Captured-output tools (dnsrecon, gowitness) have their combined
//     output captured by the adapter, which writes the artifact itself.
package tool
