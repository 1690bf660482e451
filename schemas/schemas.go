// Package schemas embeds the JSON Schemas for career kit input files.
package schemas

import "embed"

// Schema file names.
const (
	CandidateProfile = "candidate_profile.schema.json"
	ParsedDocument   = "parsed_document.schema.json"
)

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
