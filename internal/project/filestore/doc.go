// Package filestore reads and writes the single file a Store session
// edits (spec §6's Path field) and maintains a small sidecar recording
// the last cursor position seen for each path, so reopening a file
// resumes where the user left off (SPEC_FULL §3 DOMAIN STACK: tidwall/
// gjson and tidwall/sjson back the sidecar's read/modify/write cycle).
package filestore
