// Package io writes manifests and snapshots as JSON.
//
// # Format
//
// Output is indented with two spaces and ends with a newline, so it can be
// diffed and committed as a CI artifact:
//
//	{
//	  "version": 0,
//	  "sha": "abc123",
//	  ...
//	}
//
// # Export
//
// Use [ExportJSON] to write to a file, or [WriteJSON] to write to any
// io.Writer:
//
//	if err := io.ExportJSON(snap, "snapshot.json"); err != nil {
//	    log.Fatal(err)
//	}
//
// Map keys are emitted in sorted order, so the same manifest always produces
// the same bytes.
package io
