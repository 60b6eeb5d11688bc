// Package instance keeps the alarm clock a single-process utility by
// refusing to start while another process with the same executable runs.
package instance
