// Package schemas embeds the JSON Schemas for the documents the analyzer accepts.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory
//
//go:embed *.schema.json
var FS embed.FS

// Resume is the file name of the résumé schema within FS
const Resume = "resume.schema.json"
